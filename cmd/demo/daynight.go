package main

import (
	"fmt"
	"time"

	"debug-overlay/core"
	"debug-overlay/overlay"
)

// dayPalette holds the sky/light values for one key time of day.
type dayPalette struct {
	t            float32    // normalised time 0..1
	horizon      core.Color // sky at eye level, used as the clear color
	fogDensity   float32
	sunColor     core.Color
	sunIntensity float32
}

// palettes defines the key sky/light states throughout the day.
// t is ordered 0→1 and wraps (0 == 1).
var palettes = []dayPalette{
	{ // noon
		t:            0.00,
		horizon:      core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		fogDensity:   0.011,
		sunColor:     core.Color{R: 1.00, G: 0.98, B: 0.92, A: 1},
		sunIntensity: 1.20,
	},
	{ // golden hour
		t:            0.22,
		horizon:      core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		fogDensity:   0.018,
		sunColor:     core.Color{R: 1.00, G: 0.65, B: 0.25, A: 1},
		sunIntensity: 0.90,
	},
	{ // dusk
		t:            0.30,
		horizon:      core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		fogDensity:   0.020,
		sunColor:     core.Color{R: 0.70, G: 0.40, B: 0.55, A: 1},
		sunIntensity: 0.25,
	},
	{ // midnight
		t:            0.50,
		horizon:      core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1},
		fogDensity:   0.010,
		sunColor:     core.Color{R: 0.40, G: 0.45, B: 0.65, A: 1}, // moonlight
		sunIntensity: 0.12,
	},
	{ // pre-dawn
		t:            0.70,
		horizon:      core.Color{R: 0.40, G: 0.18, B: 0.24, A: 1},
		fogDensity:   0.020,
		sunColor:     core.Color{R: 0.75, G: 0.42, B: 0.60, A: 1},
		sunIntensity: 0.20,
	},
	{ // sunrise
		t:            0.78,
		horizon:      core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1},
		fogDensity:   0.015,
		sunColor:     core.Color{R: 1.00, G: 0.60, B: 0.28, A: 1},
		sunIntensity: 0.70,
	},
}

// DayNight is the demo's simulated world. It advances on fixed simulation
// steps and logs its state from there, so its overlay entries are stamped
// with the slow cadence.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Speed  float32 // full-cycle duration in seconds
	Active bool    // auto-advance when true

	steps int
}

func NewDayNight() *DayNight {
	return &DayNight{
		Time:   0.0, // start at noon
		Speed:  60.0,
		Active: true,
	}
}

// Step advances the cycle by one simulation step and logs it.
func (dn *DayNight) Step(step time.Duration, r *overlay.Router) {
	dn.steps++
	if dn.Active {
		dn.Time += float32(step.Seconds()) / dn.Speed
		if dn.Time >= 1.0 {
			dn.Time -= 1.0
		}
	}

	p := samplePalette(dn.Time)
	sky := overlay.InCategory("Sky")
	r.Text(fmt.Sprintf("time %s", dn.TimeOfDayStr()), sky)
	r.Text(fmt.Sprintf("steps %d", dn.steps), sky)
	r.Graph(float64(p.sunIntensity), "sun", 0, 1.2, sky,
		overlay.WithColor(p.sunColor), overlay.WithPolicy(overlay.PolicyClip), overlay.WithLength(240))
	r.Graph(float64(p.fogDensity)*1000, "fog", 10, 15, sky,
		overlay.WithColor(core.ColorGray), overlay.WithPolicy(overlay.PolicyAutoScale), overlay.WithLength(240))

	// a burst of activity around sunset and sunrise, absent the rest of the day
	if (dn.Time > 0.2 && dn.Time < 0.3) || (dn.Time > 0.72 && dn.Time < 0.8) {
		r.Text("birds are singing", overlay.InCategory("Wildlife"))
	}
}

// ClearColor returns the horizon color for the current time.
func (dn *DayNight) ClearColor() core.Color {
	return samplePalette(dn.Time).horizon
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

func samplePalette(t float32) dayPalette {
	n := len(palettes)
	var a, b dayPalette
	var localT float32
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		ta := palettes[i].t
		tb := palettes[next].t
		if next == 0 {
			tb = 1.0 // wrap: last key → noon (1.0 == 0.0)
			if t >= ta || t < palettes[0].t {
				a, b = palettes[i], palettes[0]
				if t >= ta {
					localT = (t - ta) / (tb - ta)
				} else {
					localT = (t + 1.0 - ta) / (tb - ta)
				}
				break
			}
		} else if t >= ta && t < tb {
			a, b = palettes[i], palettes[next]
			localT = (t - ta) / (tb - ta)
			break
		}
	}

	return dayPalette{
		t:            t,
		horizon:      lerpColor(a.horizon, b.horizon, localT),
		fogDensity:   a.fogDensity + (b.fogDensity-a.fogDensity)*localT,
		sunColor:     lerpColor(a.sunColor, b.sunColor, localT),
		sunIntensity: a.sunIntensity + (b.sunIntensity-a.sunIntensity)*localT,
	}
}

func (dn *DayNight) TimeOfDayStr() string {
	// Time 0 is noon
	hours := dn.Time*24.0 + 12.0
	h := int(hours) % 24
	m := int((hours - float32(int(hours))) * 60)
	period := "AM"
	displayH := h
	if h == 0 {
		displayH = 12
	} else if h == 12 {
		period = "PM"
	} else if h > 12 {
		displayH = h - 12
		period = "PM"
	}
	return fmt.Sprintf("%2d:%02d %s", displayH, m, period)
}
