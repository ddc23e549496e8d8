package schema

import (
	"sort"

	"github.com/tstetson/fieldtuner/internal/codec"
)

// Quality ladders shared by most render settings.
var (
	quality4 = []Member{{"0", "Low"}, {"1", "Medium"}, {"2", "High"}, {"3", "Ultra"}}
	quality5 = []Member{{"0", "Low"}, {"1", "Medium"}, {"2", "High"}, {"3", "Ultra"}, {"4", "Ultra+"}}
)

// catalog is the full table of documented settings. Discrete
// option-coded values are enums so validation is exact-match; sliders
// are int/float with clamping ranges.
var catalog = []Descriptor{
	// Graphics: API and display.
	{Key: "GstRender.Dx12Enabled", Kind: codec.KindBool, Label: "DirectX 12", Category: "Graphics", Subcategory: "API", Default: "1",
		Tooltip: "Enable DirectX 12 for better performance on modern GPUs. Disable if crashes occur.",
		Aliases: []string{"dx12", "directx", "api"}},
	{Key: "GstRender.FullscreenMode", Kind: codec.KindEnum, Label: "Fullscreen Mode", Category: "Graphics", Subcategory: "Display", Default: "1",
		Members: []Member{{"0", "Windowed"}, {"1", "Borderless"}, {"2", "Fullscreen"}},
		Tooltip: "Fullscreen (2) = best performance, Borderless (1) = easy alt-tab, Windowed (0) = flexible.",
		Aliases: []string{"fullscreen", "windowed", "borderless", "screen mode"}},
	{Key: "GstRender.FieldOfViewVertical", Kind: codec.KindFloat, Label: "Field of View", Category: "Graphics", Subcategory: "Display", Default: "70.000000", Min: 50, Max: 120,
		Tooltip: "Higher FOV = wider view but smaller targets. Pro players use 90-105.",
		Aliases: []string{"fov", "field of view", "view angle"}},
	{Key: "GstRender.FullscreenRefreshRate", Kind: codec.KindFloat, Label: "Refresh Rate", Category: "Graphics", Subcategory: "Display", Default: "60.000000", Min: 60, Max: 360,
		Tooltip: "Monitor refresh rate in Hz. Common: 60, 144, 165, 240, 360.",
		Aliases: []string{"refresh", "hz", "hertz", "monitor rate"}},
	{Key: "GstRender.Brightness", Kind: codec.KindFloat, Label: "Brightness", Category: "Graphics", Subcategory: "Display", Default: "0.500000", Min: 0, Max: 1, HardRange: true,
		Tooltip: "Screen brightness. Adjust for your monitor.",
		Aliases: []string{"brightness", "bright"}},
	{Key: "GstRender.Contrast", Kind: codec.KindFloat, Label: "Contrast", Category: "Graphics", Subcategory: "Display", Default: "0.500000", Min: 0, Max: 1, HardRange: true,
		Tooltip: "Image contrast level.",
		Aliases: []string{"contrast"}},
	{Key: "GstRender.HighDynamicRangeMode", Kind: codec.KindBool, Label: "HDR", Category: "Graphics", Subcategory: "Display", Default: "0",
		Tooltip: "High Dynamic Range. Requires HDR monitor.",
		Aliases: []string{"hdr", "high dynamic range"}},
	{Key: "GstRender.AdapterName", Kind: codec.KindString, Label: "Graphics Adapter", Category: "Graphics", Subcategory: "Display", Default: "",
		Tooltip: "Name of the GPU the game renders on. Leave empty for automatic selection.",
		Aliases: []string{"gpu", "adapter", "graphics card"}},

	// Graphics: quality ladders.
	{Key: "GstRender.OverallGraphicsQuality", Kind: codec.KindEnum, Label: "Overall Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality5,
		Tooltip: "Master quality preset. Affects most visual settings.",
		Aliases: []string{"quality", "overall", "preset", "graphics quality"}},
	{Key: "GstRender.TextureQuality", Kind: codec.KindEnum, Label: "Texture Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality5,
		Tooltip: "Higher = sharper textures but more VRAM usage. Major VRAM impact.",
		Aliases: []string{"texture", "textures"}},
	{Key: "GstRender.TextureFiltering", Kind: codec.KindEnum, Label: "Texture Filtering", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality5,
		Tooltip: "Anisotropic filtering quality. Higher = sharper textures at angles.",
		Aliases: []string{"filtering", "anisotropic", "af"}},
	{Key: "GstRender.ShadowQuality", Kind: codec.KindEnum, Label: "Shadow Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "Shadow rendering quality. Major performance impact. Low for competitive.",
		Aliases: []string{"shadow", "shadows"}},
	{Key: "GstRender.EffectsQuality", Kind: codec.KindEnum, Label: "Effects Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "Explosions, smoke, particles quality. Performance impact in firefights.",
		Aliases: []string{"effects", "particles", "explosions"}},
	{Key: "GstRender.LightingQuality", Kind: codec.KindEnum, Label: "Lighting Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "Lighting and illumination quality. Medium impact on performance.",
		Aliases: []string{"lighting", "lights", "illumination"}},
	{Key: "GstRender.PostProcessQuality", Kind: codec.KindEnum, Label: "Post Process Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "Post-processing effects quality. Low for cleaner competitive visuals.",
		Aliases: []string{"post process", "postprocess", "pp"}},
	{Key: "GstRender.MeshQuality", Kind: codec.KindEnum, Label: "Mesh Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "3D model detail level. Affects object complexity at distance.",
		Aliases: []string{"mesh", "model", "geometry", "lod"}},
	{Key: "GstRender.TerrainQuality", Kind: codec.KindEnum, Label: "Terrain Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "Ground/terrain detail. Medium performance impact.",
		Aliases: []string{"terrain", "ground", "landscape"}},
	{Key: "GstRender.VegetationQuality", Kind: codec.KindEnum, Label: "Vegetation Quality", Category: "Graphics", Subcategory: "Quality", Default: "2", Members: quality4,
		Tooltip: "Grass, trees, foliage quality. Can affect visibility in bushes.",
		Aliases: []string{"vegetation", "grass", "trees", "foliage"}},
	{Key: "GstRender.VolumetricQuality", Kind: codec.KindEnum, Label: "Volumetric Quality", Category: "Graphics", Subcategory: "Quality", Default: "2",
		Members: []Member{{"0", "Off"}, {"1", "Low"}, {"2", "Medium"}, {"3", "High"}},
		Tooltip: "Volumetric fog and lighting. Significant performance impact.",
		Aliases: []string{"volumetric", "fog", "god rays"}},

	// Graphics: post processing toggles.
	{Key: "GstRender.AntiAliasingDeferred", Kind: codec.KindInt, Label: "Anti-Aliasing", Category: "Graphics", Subcategory: "Post Processing", Default: "2", Min: 0, Max: 8,
		Tooltip: "Temporal anti-aliasing level. 0 = off, sharpest but jagged edges.",
		Aliases: []string{"aa", "anti-aliasing", "taa"}},
	{Key: "GstRender.AmbientOcclusion", Kind: codec.KindBool, Label: "Ambient Occlusion", Category: "Graphics", Subcategory: "Post Processing", Default: "1",
		Tooltip: "Contact shadows in corners and crevices. Moderate performance cost.",
		Aliases: []string{"ao", "ambient occlusion", "ssao"}},
	{Key: "GstRender.ScreenSpaceReflections", Kind: codec.KindBool, Label: "Screen Space Reflections", Category: "Graphics", Subcategory: "Post Processing", Default: "1",
		Tooltip: "Reflections on wet and glossy surfaces. Disable for FPS.",
		Aliases: []string{"ssr", "reflections"}},
	{Key: "GstRender.MotionBlurEnable", Kind: codec.KindBool, Label: "Motion Blur", Category: "Graphics", Subcategory: "Post Processing", Default: "0",
		Tooltip: "Blur during fast movement. Disable for competitive clarity.",
		Aliases: []string{"motion blur", "blur"}},
	{Key: "GstRender.MotionBlurWorld", Kind: codec.KindFloat, Label: "World Motion Blur", Category: "Graphics", Subcategory: "Post Processing", Default: "0.000000", Min: 0, Max: 100,
		Tooltip: "Motion blur amount for the world.",
		Aliases: []string{"world blur"}},
	{Key: "GstRender.MotionBlurWeapon", Kind: codec.KindFloat, Label: "Weapon Motion Blur", Category: "Graphics", Subcategory: "Post Processing", Default: "0.000000", Min: 0, Max: 100,
		Tooltip: "Motion blur amount for the weapon.",
		Aliases: []string{"weapon blur"}},
	{Key: "GstRender.DepthOfFieldEnable", Kind: codec.KindBool, Label: "Depth of Field", Category: "Graphics", Subcategory: "Post Processing", Default: "0",
		Tooltip: "Background blur when aiming. Disable for visibility.",
		Aliases: []string{"dof", "depth of field"}},
	{Key: "GstRender.FilmGrain", Kind: codec.KindBool, Label: "Film Grain", Category: "Graphics", Subcategory: "Post Processing", Default: "0",
		Tooltip: "Film grain overlay. Disable for clean image.",
		Aliases: []string{"grain", "film grain"}},
	{Key: "GstRender.LensDistortion", Kind: codec.KindBool, Label: "Lens Distortion", Category: "Graphics", Subcategory: "Post Processing", Default: "0",
		Tooltip: "Camera lens warping effect.",
		Aliases: []string{"lens", "distortion"}},
	{Key: "GstRender.ChromaticAberration", Kind: codec.KindBool, Label: "Chromatic Aberration", Category: "Graphics", Subcategory: "Post Processing", Default: "0",
		Tooltip: "Color fringing at screen edges. Disable for clarity.",
		Aliases: []string{"ca", "chromatic"}},
	{Key: "GstRender.Vignette", Kind: codec.KindBool, Label: "Vignette", Category: "Graphics", Subcategory: "Post Processing", Default: "0",
		Tooltip: "Darkens screen edges. Disable for full visibility.",
		Aliases: []string{"vignette", "edge darkening"}},
	{Key: "GstRender.SharpnessSlider", Kind: codec.KindFloat, Label: "Sharpness", Category: "Graphics", Subcategory: "Post Processing", Default: "0.500000", Min: 0, Max: 1, HardRange: true,
		Tooltip: "Image sharpening. Higher can help with TAA blur.",
		Aliases: []string{"sharpness", "sharp", "sharpen"}},

	// Graphics: ray tracing.
	{Key: "GstRender.RaytracingAmbientOcclusion", Kind: codec.KindBool, Label: "RT Ambient Occlusion", Category: "Graphics", Subcategory: "Ray Tracing", Default: "0",
		Tooltip: "Ray-traced ambient occlusion. Huge performance impact.",
		Aliases: []string{"rtao", "ray traced ao", "rt ao"}},
	{Key: "GstRender.RaytracingReflections", Kind: codec.KindBool, Label: "RT Reflections", Category: "Graphics", Subcategory: "Ray Tracing", Default: "0",
		Tooltip: "Ray-traced reflections. Major performance impact.",
		Aliases: []string{"rt reflections", "ray traced reflections"}},
	{Key: "GstRender.RaytracingGlobalIllumination", Kind: codec.KindBool, Label: "RT Global Illumination", Category: "Graphics", Subcategory: "Ray Tracing", Default: "0",
		Tooltip: "Ray-traced global illumination. Heaviest RT feature.",
		Aliases: []string{"rtgi", "ray traced gi", "global illumination"}},

	// Performance.
	{Key: "GstRender.VSyncMode", Kind: codec.KindBool, Label: "V-Sync", Category: "Performance", Subcategory: "Frame Sync", Default: "0",
		Tooltip: "Prevents screen tearing but adds input lag. Disable for competitive play.",
		Aliases: []string{"vsync", "sync", "tearing", "vertical sync"}},
	{Key: "GstRender.ResolutionScale", Kind: codec.KindFloat, Label: "Resolution Scale", Category: "Performance", Subcategory: "Resolution", Default: "1.000000", Min: 0.5, Max: 2,
		Tooltip: "Render resolution multiplier. Lower = better FPS, Higher = better quality.",
		Aliases: []string{"resolution", "scale", "render scale", "internal resolution"}},
	{Key: "GstRender.FrameRateLimit", Kind: codec.KindFloat, Label: "FPS Limit", Category: "Performance", Subcategory: "Frame Rate", Default: "0.000000", Min: 0, Max: 500,
		Tooltip: "Cap FPS to reduce GPU load/heat. 0 = unlimited. Match monitor refresh rate.",
		Aliases: []string{"fps", "frame rate", "fps limit", "framerate", "cap"}},
	{Key: "GstRender.FrameRateLimiterEnable", Kind: codec.KindBool, Label: "Frame Limiter Enable", Category: "Performance", Subcategory: "Frame Rate", Default: "0",
		Tooltip: "Enable the built-in frame rate limiter.",
		Aliases: []string{"limiter", "fps limit enable"}},
	{Key: "GstRender.FutureFrameRendering", Kind: codec.KindBool, Label: "Future Frame Rendering", Category: "Performance", Subcategory: "Latency", Default: "1",
		Tooltip: "Pre-renders frames for smoother gameplay. Enable for better FPS.",
		Aliases: []string{"ffr", "future frame", "pre-render"}},
	{Key: "GstRender.FrameGeneration", Kind: codec.KindBool, Label: "Frame Generation", Category: "Performance", Subcategory: "Frame Gen", Default: "0",
		Tooltip: "AI frame generation. Requires compatible GPU (RTX 40xx/RX 7xxx).",
		Aliases: []string{"frame gen", "dlss fg", "afmf"}},
	{Key: "GstRender.NVIDIAFrameGenerationEnabled", Kind: codec.KindBool, Label: "NVIDIA Frame Gen", Category: "Performance", Subcategory: "Frame Gen", Default: "0",
		Tooltip: "DLSS 3 Frame Generation. RTX 40 series only.",
		Aliases: []string{"nvidia fg", "dlss 3", "dlss frame gen"}},
	{Key: "GstRender.NvidiaLowLatency", Kind: codec.KindEnum, Label: "NVIDIA Reflex", Category: "Performance", Subcategory: "Latency", Default: "2",
		Members: []Member{{"0", "Off"}, {"1", "On"}, {"2", "On + Boost"}},
		Tooltip: "Reduces input latency on NVIDIA GPUs. Use Boost for competitive.",
		Aliases: []string{"reflex", "nvidia latency", "low latency"}},
	{Key: "GstRender.AMDLowLatency", Kind: codec.KindBool, Label: "AMD Anti-Lag", Category: "Performance", Subcategory: "Latency", Default: "0",
		Tooltip: "Reduces input latency on AMD GPUs.",
		Aliases: []string{"anti-lag", "amd latency"}},
	{Key: "GstRender.IntelLowLatency", Kind: codec.KindBool, Label: "Intel Low Latency", Category: "Performance", Subcategory: "Latency", Default: "0",
		Tooltip: "Reduces input latency on Intel GPUs.",
		Aliases: []string{"intel latency"}},

	// Audio.
	{Key: "GstAudio.Volume", Kind: codec.KindFloat, Label: "Master Volume", Category: "Audio", Subcategory: "Volume", Default: "1.000000", Min: 0, Max: 1,
		Tooltip: "Main game volume.",
		Aliases: []string{"volume", "master", "sound"}},
	{Key: "GstAudio.Volume_SFX", Kind: codec.KindFloat, Label: "SFX Volume", Category: "Audio", Subcategory: "Volume", Default: "1.000000", Min: 0, Max: 1,
		Tooltip: "Sound effects volume (gunfire, explosions).",
		Aliases: []string{"sfx", "effects volume", "sound effects"}},
	{Key: "GstAudio.Volume_Music", Kind: codec.KindFloat, Label: "Music Volume", Category: "Audio", Subcategory: "Volume", Default: "1.000000", Min: 0, Max: 1,
		Tooltip: "Background music volume.",
		Aliases: []string{"music", "music volume", "soundtrack"}},
	{Key: "GstAudio.Volume_UI", Kind: codec.KindFloat, Label: "UI Volume", Category: "Audio", Subcategory: "Volume", Default: "1.000000", Min: 0, Max: 1,
		Tooltip: "Menu and interface sounds volume.",
		Aliases: []string{"ui volume", "menu sounds"}},
	{Key: "GstAudio.VOIPVolume", Kind: codec.KindFloat, Label: "VOIP Volume", Category: "Audio", Subcategory: "Volume", Default: "1.000000", Min: 0, Max: 1,
		Tooltip: "Voice chat volume.",
		Aliases: []string{"voip", "voice chat", "voice volume"}},
	{Key: "GstAudio.VoipOn", Kind: codec.KindBool, Label: "VOIP Enable", Category: "Audio", Subcategory: "Voice Chat", Default: "1",
		Tooltip: "Enable in-game voice chat.",
		Aliases: []string{"voip enable", "voice chat enable"}},
	{Key: "GstAudio.PlaySoundInBackground_OnOff", Kind: codec.KindBool, Label: "Background Audio", Category: "Audio", Subcategory: "General", Default: "1",
		Tooltip: "Play sound when game is minimized.",
		Aliases: []string{"background audio", "background sound"}},
	{Key: "GstAudio.HitIndicatorSound", Kind: codec.KindBool, Label: "Hit Indicator Sound", Category: "Audio", Subcategory: "Feedback", Default: "1",
		Tooltip: "Sound when hitting enemies. Essential for competitive.",
		Aliases: []string{"hit sound", "hit indicator", "hitmarker"}},
	{Key: "GstAudio.InGameAnnouncer_OnOff", Kind: codec.KindBool, Label: "Announcer", Category: "Audio", Subcategory: "Feedback", Default: "1",
		Tooltip: "In-game announcer voice.",
		Aliases: []string{"announcer", "voice announcer"}},
	{Key: "GstAudio.SubtitlesFriendlies", Kind: codec.KindBool, Label: "Subtitles: Friendlies", Category: "Audio", Subcategory: "Subtitles", Default: "1",
		Tooltip: "Show subtitles for friendly callouts.",
		Aliases: []string{"friendly subtitles"}},
	{Key: "GstAudio.SubtitlesEnemies", Kind: codec.KindBool, Label: "Subtitles: Enemies", Category: "Audio", Subcategory: "Subtitles", Default: "1",
		Tooltip: "Show subtitles for enemy callouts.",
		Aliases: []string{"enemy subtitles"}},
	{Key: "GstAudio.SubtitlesSquad", Kind: codec.KindBool, Label: "Subtitles: Squad", Category: "Audio", Subcategory: "Subtitles", Default: "1",
		Tooltip: "Show subtitles for squad callouts.",
		Aliases: []string{"squad subtitles"}},
	{Key: "GstAudio.SubtitlesShowSpeakerName", Kind: codec.KindBool, Label: "Show Speaker Name", Category: "Audio", Subcategory: "Subtitles", Default: "1",
		Tooltip: "Display speaker name with subtitles.",
		Aliases: []string{"speaker name"}},

	// Input.
	{Key: "GstInput.MouseSensitivity", Kind: codec.KindFloat, Label: "Mouse Sensitivity", Category: "Input", Subcategory: "Mouse", Default: "1.000000", Min: 0, Max: 10,
		Tooltip: "Mouse sensitivity. Find your comfort zone and stick with it.",
		Aliases: []string{"sensitivity", "sens", "mouse sens", "mouse speed"}},
	{Key: "GstInput.MouseRawInput", Kind: codec.KindBool, Label: "Raw Mouse Input", Category: "Input", Subcategory: "Mouse", Default: "1",
		Tooltip: "Bypass Windows mouse acceleration. Enable for consistent aim.",
		Aliases: []string{"raw input", "raw mouse", "mouse accel"}},
	{Key: "GstInput.UniformSoldierAiming", Kind: codec.KindBool, Label: "Uniform Soldier Aiming", Category: "Input", Subcategory: "Mouse", Default: "1",
		Tooltip: "Consistent sensitivity across all zoom levels. Enable for muscle memory.",
		Aliases: []string{"usa", "uniform aiming", "uniform soldier"}},
	{Key: "GstInput.UniformSoldierAimingCoefficient", Kind: codec.KindFloat, Label: "USA Coefficient", Category: "Input", Subcategory: "Mouse", Default: "1.330000", Min: 0.1, Max: 3, HardRange: true,
		Tooltip: "Uniform aiming coefficient. 1.33 is default for BF games.",
		Aliases: []string{"usa coefficient", "aiming coefficient"}},
	{Key: "GstInput.HoldButtonToZoom", Kind: codec.KindBool, Label: "Hold to ADS", Category: "Input", Subcategory: "Controls", Default: "0",
		Tooltip: "Hold button to aim down sights vs toggle.",
		Aliases: []string{"hold zoom", "toggle ads", "aim toggle"}},
	{Key: "GstInput.SprintHold", Kind: codec.KindBool, Label: "Hold to Sprint", Category: "Input", Subcategory: "Controls", Default: "0",
		Tooltip: "Hold button to sprint vs toggle.",
		Aliases: []string{"hold sprint", "toggle sprint", "sprint toggle"}},
	{Key: "GstInput.Vibration", Kind: codec.KindBool, Label: "Controller Vibration", Category: "Input", Subcategory: "Controller", Default: "1",
		Tooltip: "Controller rumble feedback.",
		Aliases: []string{"vibration", "rumble", "haptic"}},
}

var byKey = func() map[string]*Descriptor {
	m := make(map[string]*Descriptor, len(catalog))
	for i := range catalog {
		m[catalog[i].Key] = &catalog[i]
	}
	return m
}()

// Lookup returns the descriptor for a canonical setting key. Unknown
// keys return (nil, false); they are undocumented, not invalid.
func Lookup(key string) (*Descriptor, bool) {
	d, ok := byKey[key]
	return d, ok
}

// Resolve finds a descriptor by canonical key or exact alias.
func Resolve(name string) (*Descriptor, bool) {
	if d, ok := byKey[name]; ok {
		return d, true
	}
	for i := range catalog {
		if catalog[i].MatchesAlias(name) {
			return &catalog[i], true
		}
	}
	return nil, false
}

// All returns every descriptor sorted by key.
func All() []*Descriptor {
	out := make([]*Descriptor, 0, len(catalog))
	for i := range catalog {
		out = append(out, &catalog[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Categories returns the sorted set of category names.
func Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range catalog {
		c := catalog[i].Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ByCategory returns descriptors in the given category sorted by key.
func ByCategory(category string) []*Descriptor {
	var out []*Descriptor
	for i := range catalog {
		if catalog[i].Category == category {
			out = append(out, &catalog[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
