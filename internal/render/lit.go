package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Warm three-light rig: key from the front right, fill from the left, rim from behind.
var (
	keyColor  = [3]float32{0xf6 / 255.0, 0xe6 / 255.0, 0xc8 / 255.0}
	fillColor = [3]float32{0xe0 / 255.0, 0xb9 / 255.0, 0x94 / 255.0}
	rimColor  = [3]float32{0x5c / 255.0, 0x40 / 255.0, 0x33 / 255.0}

	keyDir  = [3]float32{0.6, 1.0, 0.8}
	fillDir = [3]float32{-0.8, 0.4, 0.5}
	rimDir  = [3]float32{0.0, 0.6, -1.0}

	ambient = [4]float32{0.28, 0.22, 0.19, 1.0}
)

const (
	keyIntensity     = float32(0.85)
	fillIntensity    = float32(0.45)
	rimIntensity     = float32(0.6)
	specularPower    = float32(32.0)
	specularStrength = float32(0.25)
)

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// litFS shades the albedo (texture0 * colDiffuse) with three directional lights.
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec4 ambient;
uniform vec3 lightDir[3];
uniform vec3 lightColor[3];
uniform float lightIntensity[3];
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 color = ambient.rgb * tint.rgb;
  for (int i = 0; i < 3; i++) {
    vec3 L = normalize(lightDir[i]);
    float NdotL = max(dot(N, L), 0.0);
    color += tint.rgb * NdotL * lightColor[i] * lightIntensity[i];
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
    color += lightColor[i] * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  }
  finalColor = vec4(color, tint.a);
}
`
)

// lighting owns the lit shader and its uniform locations.
type lighting struct {
	shader rl.Shader
	ready  bool

	viewPos, ambient                   int32
	lightDir, lightColor, lightIntense int32
	specPower, specStrength            int32
}

// load compiles the shader. It must run after the window exists.
func (l *lighting) load() {
	if l.ready {
		return
	}
	l.ready = true
	l.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(l.shader) {
		return
	}
	l.viewPos = rl.GetShaderLocation(l.shader, "viewPos")
	l.ambient = rl.GetShaderLocation(l.shader, "ambient")
	l.lightDir = rl.GetShaderLocation(l.shader, "lightDir")
	l.lightColor = rl.GetShaderLocation(l.shader, "lightColor")
	l.lightIntense = rl.GetShaderLocation(l.shader, "lightIntensity")
	l.specPower = rl.GetShaderLocation(l.shader, "specularPower")
	l.specStrength = rl.GetShaderLocation(l.shader, "specularStrength")
}

func (l *lighting) valid() bool { return l.ready && rl.IsShaderValid(l.shader) }

// apply uploads per-frame uniforms (cgo-safe: local arrays).
func (l *lighting) apply(view rl.Vector3) {
	if !l.valid() {
		return
	}
	pos := []float32{view.X, view.Y, view.Z}
	dirs := []float32{
		keyDir[0], keyDir[1], keyDir[2],
		fillDir[0], fillDir[1], fillDir[2],
		rimDir[0], rimDir[1], rimDir[2],
	}
	colors := []float32{
		keyColor[0], keyColor[1], keyColor[2],
		fillColor[0], fillColor[1], fillColor[2],
		rimColor[0], rimColor[1], rimColor[2],
	}
	amb := []float32{ambient[0], ambient[1], ambient[2], ambient[3]}
	set := func(loc int32, v []float32, typ rl.ShaderUniformDataType, n int32) {
		if loc >= 0 {
			rl.SetShaderValueV(l.shader, loc, v, typ, n)
		}
	}
	set(l.viewPos, pos, rl.ShaderUniformVec3, 1)
	set(l.ambient, amb, rl.ShaderUniformVec4, 1)
	set(l.lightDir, dirs, rl.ShaderUniformVec3, 3)
	set(l.lightColor, colors, rl.ShaderUniformVec3, 3)
	set(l.lightIntense, []float32{keyIntensity, fillIntensity, rimIntensity}, rl.ShaderUniformFloat, 3)
	set(l.specPower, []float32{specularPower}, rl.ShaderUniformFloat, 1)
	set(l.specStrength, []float32{specularStrength}, rl.ShaderUniformFloat, 1)
}

func (l *lighting) unload() {
	if l.valid() {
		rl.UnloadShader(l.shader)
	}
	l.ready = false
}
