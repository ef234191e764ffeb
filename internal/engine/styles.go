package engine

import "github.com/Conceptual-Machines/magda-engine-go/internal/models"

// Style bundles the instrument and effect chain a track is tagged with.
// Styling is lookup data for the serialization collaborator, not part of the
// generation algorithms.
type Style struct {
	Instrument string
	Effects    models.EffectSettings
}

const defaultGenre = "electronic"

var styleTable = map[string]map[models.VoiceRole]Style{
	"electronic": {
		models.RoleRhythm:   {Instrument: "drum-machine", Effects: models.EffectSettings{Compression: 0.6, Reverb: 0.1}},
		models.RoleBass:     {Instrument: "analog-bass", Effects: models.EffectSettings{Compression: 0.5, Distortion: 0.15}},
		models.RoleHarmony:  {Instrument: "poly-synth", Effects: models.EffectSettings{Reverb: 0.35, Delay: 0.2}},
		models.RoleTexture:  {Instrument: "warm-pad", Effects: models.EffectSettings{Reverb: 0.6, Delay: 0.3}},
		models.RoleArpeggio: {Instrument: "pluck-synth", Effects: models.EffectSettings{Delay: 0.4, Reverb: 0.25}},
		models.RoleLead:     {Instrument: "lead-synth", Effects: models.EffectSettings{Reverb: 0.3, Delay: 0.25}},
	},
	"jazz": {
		models.RoleRhythm:   {Instrument: "brush-kit", Effects: models.EffectSettings{Reverb: 0.25}},
		models.RoleBass:     {Instrument: "upright-bass", Effects: models.EffectSettings{Compression: 0.3}},
		models.RoleHarmony:  {Instrument: "grand-piano", Effects: models.EffectSettings{Reverb: 0.3}},
		models.RoleTexture:  {Instrument: "vibraphone", Effects: models.EffectSettings{Reverb: 0.45}},
		models.RoleArpeggio: {Instrument: "nylon-guitar", Effects: models.EffectSettings{Reverb: 0.3}},
		models.RoleLead:     {Instrument: "tenor-sax", Effects: models.EffectSettings{Reverb: 0.35}},
	},
	"rock": {
		models.RoleRhythm:   {Instrument: "rock-kit", Effects: models.EffectSettings{Compression: 0.7}},
		models.RoleBass:     {Instrument: "picked-bass", Effects: models.EffectSettings{Compression: 0.55, Distortion: 0.2}},
		models.RoleHarmony:  {Instrument: "crunch-guitar", Effects: models.EffectSettings{Distortion: 0.5, Reverb: 0.2}},
		models.RoleTexture:  {Instrument: "organ", Effects: models.EffectSettings{Reverb: 0.3}},
		models.RoleArpeggio: {Instrument: "clean-guitar", Effects: models.EffectSettings{Delay: 0.3, Reverb: 0.25}},
		models.RoleLead:     {Instrument: "lead-guitar", Effects: models.EffectSettings{Distortion: 0.6, Delay: 0.2}},
	},
	"hip-hop": {
		models.RoleRhythm:   {Instrument: "mpc-kit", Effects: models.EffectSettings{Compression: 0.75}},
		models.RoleBass:     {Instrument: "sub-bass", Effects: models.EffectSettings{Compression: 0.6}},
		models.RoleHarmony:  {Instrument: "rhodes", Effects: models.EffectSettings{Reverb: 0.3, Compression: 0.3}},
		models.RoleTexture:  {Instrument: "string-pad", Effects: models.EffectSettings{Reverb: 0.5}},
		models.RoleArpeggio: {Instrument: "music-box", Effects: models.EffectSettings{Reverb: 0.4, Delay: 0.3}},
		models.RoleLead:     {Instrument: "synth-flute", Effects: models.EffectSettings{Reverb: 0.35, Delay: 0.25}},
	},
	"ambient": {
		models.RoleRhythm:   {Instrument: "soft-perc", Effects: models.EffectSettings{Reverb: 0.6}},
		models.RoleBass:     {Instrument: "drone-bass", Effects: models.EffectSettings{Reverb: 0.4}},
		models.RoleHarmony:  {Instrument: "glass-pad", Effects: models.EffectSettings{Reverb: 0.7, Delay: 0.4}},
		models.RoleTexture:  {Instrument: "shimmer-pad", Effects: models.EffectSettings{Reverb: 0.8, Delay: 0.5}},
		models.RoleArpeggio: {Instrument: "bell-synth", Effects: models.EffectSettings{Reverb: 0.65, Delay: 0.45}},
		models.RoleLead:     {Instrument: "ethereal-lead", Effects: models.EffectSettings{Reverb: 0.6, Delay: 0.4}},
	},
}

// styleFor resolves genre + role to a style, degrading to the electronic
// table for unknown genres.
func styleFor(genre string, role models.VoiceRole) Style {
	table, ok := styleTable[genre]
	if !ok {
		table = styleTable[defaultGenre]
	}
	if s, ok := table[role]; ok {
		return s
	}
	return Style{Instrument: "keys"}
}
