package renderer

const meshVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(transpose(inverse(uModel))) * aNormal;
    vUV = aUV;
    gl_Position = uProjection * uView * world;
    gl_PointSize = 3.0;
}
`

// Fixed-function style lighting: ambient plus per-light diffuse and white
// specular. A light with position w == 0 is directional.
const meshFragmentShader = `#version 410 core
in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;

uniform vec3 uColor;
uniform float uShininess;
uniform bool uLit;
uniform bool uUseTexture;
uniform sampler2D uTexture;
uniform vec3 uViewPos;

uniform bool uLightOn[3];
uniform vec4 uLightPos[3];
uniform vec3 uLightColor[3];

out vec4 FragColor;

void main() {
    vec3 base = uColor;
    if (uUseTexture) {
        base *= texture(uTexture, vUV).rgb;
    }
    if (!uLit) {
        FragColor = vec4(base, 1.0);
        return;
    }

    vec3 n = normalize(vNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    vec3 viewDir = normalize(uViewPos - vWorldPos);
    vec3 result = 0.2 * base;
    for (int i = 0; i < 3; i++) {
        if (!uLightOn[i]) {
            continue;
        }
        vec3 l = uLightPos[i].w == 0.0
            ? normalize(uLightPos[i].xyz)
            : normalize(uLightPos[i].xyz - vWorldPos);
        float diff = max(dot(n, l), 0.0);
        vec3 h = normalize(l + viewDir);
        float specular = diff > 0.0 ? pow(max(dot(n, h), 0.0), max(uShininess, 1.0)) : 0.0;
        result += uLightColor[i] * (diff * base + specular);
    }
    FragColor = vec4(min(result, vec3(1.0)), 1.0);
}
`

const lineVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 uViewProj;

void main() {
    gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `#version 410 core
uniform vec3 uColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, 1.0);
}
`
