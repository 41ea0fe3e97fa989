package wind

// Uniform and sampler names shared by the shader sources, the material
// setup and the per-frame update.
const (
	UniformWorldViewProjection = "worldViewProjection"
	UniformTime                = "time"
	UniformMaxPos              = "maxPos"
	UniformUseNoise            = "useNoise"
	UniformXPower              = "xPower"
	UniformZPower              = "zPower"
	UniformXFreq               = "xFreq"
	UniformZFreq               = "zFreq"
	UniformColor1              = "color1"
	UniformColor2              = "color2"
	SamplerNoiseMap            = "noiseMap"
)

// Attributes are bound in this order: position = 0, normal = 1.
var Attributes = []string{"position", "normal"}

var Uniforms = []string{
	UniformWorldViewProjection,
	UniformTime,
	UniformMaxPos,
	UniformUseNoise,
	UniformXPower,
	UniformZPower,
	UniformXFreq,
	UniformZFreq,
	UniformColor1,
	UniformColor2,
}

var Samplers = []string{SamplerNoiseMap}

// VertexSource sways each vertex sideways by a sine of its position and
// time. The offset is scaled by height so y=0 stays pinned. With useNoise
// the sine frequency is modulated by the averaged noise texture sample at
// the vertex's normalised ground position.
const VertexSource = `
#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;

uniform mat4 worldViewProjection;
uniform float time;
uniform sampler2D noiseMap;
uniform vec2 maxPos;
uniform bool useNoise;

uniform float xPower;
uniform float zPower;
uniform float xFreq;
uniform float zFreq;

out vec3 vPosition;
out vec3 vNormal;

void main() {
    float noise = 1.0;
    if (useNoise) {
        vec2 uv = vec2(position.x / maxPos.x, position.z / maxPos.y);
        vec4 color = texture(noiseMap, uv);
        noise = (color.x + color.y + color.z) / 3.0;
    }

    vec3 newPosition = position;
    newPosition.x += xPower * sin(position.z * xFreq * noise + time) * newPosition.y;
    newPosition.z += zPower * sin(position.x * zFreq * noise + time) * newPosition.y;

    vPosition = newPosition;
    vNormal = normal;

    gl_Position = worldViewProjection * vec4(newPosition, 1.0);
}
` + "\x00"

// FragmentSource shades by height between color1 (root) and color2 (tip).
const FragmentSource = `
#version 410 core
uniform vec3 color1;
uniform vec3 color2;

in vec3 vPosition;
in vec3 vNormal;

out vec4 fragColor;

void main() {
    vec3 color = mix(color1, color2, vPosition.y);
    fragColor = vec4(color, 1.0);
}
` + "\x00"
