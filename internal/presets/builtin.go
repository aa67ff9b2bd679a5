package presets

import "reelfx/internal/effects"

const builtInDuration = 5

func builtIns() []Preset {
	return []Preset{
		{
			Name:        "Cinematic",
			Description: "Hollywood-style color grading with film grain",
			Category:    CategoryCinematic,
			Templates: []effects.Template{
				grade(func(g *effects.ColorGrade) {
					g.Contrast = 20
					g.Saturation = -10
					g.Highlights = -15
					g.Shadows = 10
					g.Temperature = 8
				}),
				particles(effects.ParticleDust, 0.35),
			},
		},
		{
			Name:        "Vintage 70s",
			Description: "Retro look with warm tones and vignette",
			Category:    CategoryVintage,
			Templates: []effects.Template{
				grade(func(g *effects.ColorGrade) {
					g.Temperature = 35
					g.Saturation = -20
					g.Blacks = 15
					g.Curves = &effects.Curves{RGB: []float64{0.08, 0.3, 0.6, 0.92}}
				}),
				distortion(effects.DistortionLens, 0.3),
			},
		},
		{
			Name:        "Horror",
			Description: "Dark and desaturated with cold tones",
			Category:    CategoryHorror,
			Templates: []effects.Template{
				grade(func(g *effects.ColorGrade) {
					g.Temperature = -30
					g.Saturation = -50
					g.Exposure = -0.5
					g.Contrast = 30
				}),
				particles(effects.ParticleSmoke, 0.6),
			},
		},
		{
			Name:        "Sci-Fi",
			Description: "Futuristic look with blue tones and chromatic aberration",
			Category:    CategorySciFi,
			Templates: []effects.Template{
				grade(func(g *effects.ColorGrade) {
					g.Temperature = -40
					g.Tint = 10
					g.Vibrance = 25
				}),
				distortion(effects.DistortionFisheye, 0.15),
				effects.NewTemplate(effects.NewTransition(effects.TransitionGlitch), 0, 1),
			},
		},
		{
			Name:        "Romantic Glow",
			Description: "Soft warm bloom with drifting sparkles",
			Category:    CategoryRomantic,
			Templates: []effects.Template{
				grade(func(g *effects.ColorGrade) {
					g.Temperature = 20
					g.Highlights = 15
					g.Saturation = 5
				}),
				effects.NewTemplate(effects.NewBlur(effects.BlurBokeh, 12), 0, builtInDuration),
				particles(effects.ParticleSparkle, 0.5),
			},
		},
		{
			Name:        "Action Impact",
			Description: "Punchy contrast, zoom hit and speed ramp",
			Category:    CategoryAction,
			Templates: []effects.Template{
				grade(func(g *effects.ColorGrade) {
					g.Contrast = 40
					g.Vibrance = 20
				}),
				effects.NewTemplate(effects.NewTransition(effects.TransitionZoom), 0, 0.5),
				effects.NewTemplate(effects.NewBlur(effects.BlurMotion, 20), 0.5, 1),
				effects.NewTemplate(effects.NewTimeRemap(effects.TimeRamp, 1.5), 0.5, 2),
			},
		},
		{
			Name:        "Blank",
			Description: "Empty starting point for custom presets",
			Category:    CategoryCustom,
		},
	}
}

func grade(adjust func(*effects.ColorGrade)) effects.Template {
	g := effects.NewColorGrade()
	adjust(g)
	return effects.NewTemplate(g, 0, builtInDuration)
}

func particles(t effects.ParticleType, intensity float64) effects.Template {
	tpl := effects.NewTemplate(effects.NewParticle(t), 0, builtInDuration)
	tpl.Intensity = intensity
	return tpl
}

func distortion(t effects.DistortionType, amount float64) effects.Template {
	d := effects.NewDistortion(t)
	d.Amount = amount
	return effects.NewTemplate(d, 0, builtInDuration)
}
