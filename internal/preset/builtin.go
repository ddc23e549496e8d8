package preset

// Built-in presets. Values are raw profile text; they pass through
// validation like any manual edit when applied.
var builtins = []Preset{
	{
		ID:          "esports",
		Name:        "Esports Pro",
		Description: "Maximum competitive advantage. Lowest settings, highest FPS.",
		Builtin:     true,
		Settings: map[string]string{
			"GstRender.Dx12Enabled":                  "1",
			"GstRender.FullscreenMode":               "2",
			"GstRender.VSyncMode":                    "0",
			"GstRender.FutureFrameRendering":         "1",
			"GstRender.FrameRateLimit":               "0.000000",
			"GstRender.FrameRateLimiterEnable":       "0",
			"GstRender.OverallGraphicsQuality":       "0",
			"GstRender.TextureQuality":               "0",
			"GstRender.TextureFiltering":             "0",
			"GstRender.ShadowQuality":                "0",
			"GstRender.EffectsQuality":               "0",
			"GstRender.LightingQuality":              "0",
			"GstRender.PostProcessQuality":           "0",
			"GstRender.MeshQuality":                  "0",
			"GstRender.TerrainQuality":               "0",
			"GstRender.VegetationQuality":            "0",
			"GstRender.VolumetricQuality":            "0",
			"GstRender.AntiAliasingDeferred":         "0",
			"GstRender.AmbientOcclusion":             "0",
			"GstRender.ScreenSpaceReflections":       "0",
			"GstRender.MotionBlurEnable":             "0",
			"GstRender.MotionBlurWorld":              "0.000000",
			"GstRender.MotionBlurWeapon":             "0.000000",
			"GstRender.DepthOfFieldEnable":           "0",
			"GstRender.FilmGrain":                    "0",
			"GstRender.LensDistortion":               "0",
			"GstRender.ChromaticAberration":          "0",
			"GstRender.Vignette":                     "0",
			"GstRender.ResolutionScale":              "1.000000",
			"GstRender.NvidiaLowLatency":             "2",
			"GstRender.RaytracingAmbientOcclusion":   "0",
			"GstRender.RaytracingReflections":        "0",
			"GstRender.RaytracingGlobalIllumination": "0",
			"GstAudio.HitIndicatorSound":             "1",
			"GstAudio.SubtitlesEnemies":              "1",
			"GstAudio.SubtitlesFriendlies":           "1",
			"GstAudio.SubtitlesSquad":                "1",
			"GstInput.MouseRawInput":                 "1",
			"GstInput.UniformSoldierAiming":          "1",
		},
	},
	{
		ID:          "competitive",
		Name:        "Competitive",
		Description: "Balanced for competitive play. Good FPS with acceptable visuals.",
		Builtin:     true,
		Settings: map[string]string{
			"GstRender.Dx12Enabled":            "1",
			"GstRender.FullscreenMode":         "2",
			"GstRender.VSyncMode":              "0",
			"GstRender.FutureFrameRendering":   "1",
			"GstRender.FrameRateLimit":         "0.000000",
			"GstRender.FrameRateLimiterEnable": "0",
			"GstRender.OverallGraphicsQuality": "1",
			"GstRender.TextureQuality":         "2",
			"GstRender.TextureFiltering":       "2",
			"GstRender.ShadowQuality":          "1",
			"GstRender.EffectsQuality":         "1",
			"GstRender.LightingQuality":        "1",
			"GstRender.PostProcessQuality":     "0",
			"GstRender.MeshQuality":            "1",
			"GstRender.TerrainQuality":         "1",
			"GstRender.VegetationQuality":      "0",
			"GstRender.VolumetricQuality":      "0",
			"GstRender.AntiAliasingDeferred":   "2",
			"GstRender.AmbientOcclusion":       "0",
			"GstRender.ScreenSpaceReflections": "0",
			"GstRender.MotionBlurEnable":       "0",
			"GstRender.MotionBlurWorld":        "0.000000",
			"GstRender.MotionBlurWeapon":       "0.000000",
			"GstRender.DepthOfFieldEnable":     "0",
			"GstRender.FilmGrain":              "0",
			"GstRender.LensDistortion":         "0",
			"GstRender.ChromaticAberration":    "0",
			"GstRender.Vignette":               "0",
			"GstRender.ResolutionScale":        "1.000000",
			"GstRender.NvidiaLowLatency":       "2",
			"GstInput.MouseRawInput":           "1",
			"GstInput.UniformSoldierAiming":    "1",
		},
	},
	{
		ID:          "balanced",
		Name:        "Balanced",
		Description: "Good mix of performance and visuals. Recommended for most players.",
		Builtin:     true,
		Settings: map[string]string{
			"GstRender.Dx12Enabled":            "1",
			"GstRender.FullscreenMode":         "1",
			"GstRender.VSyncMode":              "0",
			"GstRender.FutureFrameRendering":   "1",
			"GstRender.FrameRateLimit":         "144.000000",
			"GstRender.FrameRateLimiterEnable": "1",
			"GstRender.OverallGraphicsQuality": "2",
			"GstRender.TextureQuality":         "2",
			"GstRender.TextureFiltering":       "2",
			"GstRender.ShadowQuality":          "2",
			"GstRender.EffectsQuality":         "2",
			"GstRender.LightingQuality":        "2",
			"GstRender.PostProcessQuality":     "2",
			"GstRender.MeshQuality":            "2",
			"GstRender.TerrainQuality":         "2",
			"GstRender.VegetationQuality":      "2",
			"GstRender.VolumetricQuality":      "1",
			"GstRender.AntiAliasingDeferred":   "5",
			"GstRender.AmbientOcclusion":       "1",
			"GstRender.ScreenSpaceReflections": "1",
			"GstRender.MotionBlurEnable":       "0",
			"GstRender.MotionBlurWorld":        "0.000000",
			"GstRender.MotionBlurWeapon":       "0.000000",
			"GstRender.DepthOfFieldEnable":     "0",
			"GstRender.FilmGrain":              "0",
			"GstRender.LensDistortion":         "0",
			"GstRender.ChromaticAberration":    "0",
			"GstRender.Vignette":               "0",
			"GstRender.ResolutionScale":        "1.000000",
			"GstRender.NvidiaLowLatency":       "1",
		},
	},
	{
		ID:          "quality",
		Name:        "Quality",
		Description: "High visual quality for powerful systems. Best for screenshots and singleplayer.",
		Builtin:     true,
		Settings: map[string]string{
			"GstRender.Dx12Enabled":                "1",
			"GstRender.FullscreenMode":             "1",
			"GstRender.VSyncMode":                  "1",
			"GstRender.FutureFrameRendering":       "1",
			"GstRender.FrameRateLimit":             "60.000000",
			"GstRender.FrameRateLimiterEnable":     "1",
			"GstRender.OverallGraphicsQuality":     "3",
			"GstRender.TextureQuality":             "3",
			"GstRender.TextureFiltering":           "3",
			"GstRender.ShadowQuality":              "3",
			"GstRender.EffectsQuality":             "3",
			"GstRender.LightingQuality":            "3",
			"GstRender.PostProcessQuality":         "3",
			"GstRender.MeshQuality":                "3",
			"GstRender.TerrainQuality":             "3",
			"GstRender.VegetationQuality":          "3",
			"GstRender.VolumetricQuality":          "3",
			"GstRender.AntiAliasingDeferred":       "7",
			"GstRender.AmbientOcclusion":           "1",
			"GstRender.ScreenSpaceReflections":     "1",
			"GstRender.MotionBlurEnable":           "1",
			"GstRender.MotionBlurWorld":            "50.000000",
			"GstRender.MotionBlurWeapon":           "25.000000",
			"GstRender.DepthOfFieldEnable":         "1",
			"GstRender.FilmGrain":                  "0",
			"GstRender.LensDistortion":             "0",
			"GstRender.ChromaticAberration":        "0",
			"GstRender.Vignette":                   "0",
			"GstRender.ResolutionScale":            "1.000000",
			"GstRender.RaytracingAmbientOcclusion": "1",
			"GstRender.RaytracingReflections":      "1",
		},
	},
}
