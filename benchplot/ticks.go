// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// logTicks labels a y axis whose coordinates are log10(v) - floor.
type logTicks struct {
	floor float64
}

func (t logTicks) label(y float64) string {
	return strconv.FormatFloat(math.Pow(10, y+t.floor), 'g', 3, 64)
}

func (t logTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for k := math.Floor(min); k <= math.Ceil(max); k++ {
		if k >= min && k <= max {
			ticks = append(ticks, plot.Tick{Value: k, Label: t.label(k)})
		}
		for m := 2.0; m < 10; m++ {
			y := k + math.Log10(m)
			if y >= min && y <= max {
				ticks = append(ticks, plot.Tick{Value: y})
			}
		}
	}
	major := 0
	for _, tk := range ticks {
		if !tk.IsMinor() {
			major++
		}
	}
	if major >= 2 {
		return ticks
	}
	// Less than a decade: fall back to linear spacing.
	ticks = plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if !ticks[i].IsMinor() {
			ticks[i].Label = t.label(ticks[i].Value)
		}
	}
	return ticks
}

// ratioTicks places grid lines at round steps above and below 1.
type ratioTicks struct{}

func (ratioTicks) Ticks(min, max float64) []plot.Tick {
	span := math.Max(1-min, max-1)
	if !(span > 0) {
		return []plot.Tick{one}
	}
	step, k := roundish(span / 4)
	var ticks []plot.Tick
	for t := 1.0; t >= min && len(ticks) < 50; t -= step {
		ticks = append(ticks, tick(t, k))
	}
	ticks = reverseTicks(ticks)
	for t := 1.0 + step; t <= max && len(ticks) < 100; t += step {
		ticks = append(ticks, tick(t, k))
	}
	return ticks
}

// roundish finds a roundish fraction no greater than x, and the number
// of decimal digits needed to print multiples of it.
func roundish(x float64) (float64, int) {
	if !(x > 0) { // catch NaN also.
		panic(fmt.Sprintf("roundish(%.9g <= 0)", x))
	}
	if x >= 1 {
		return math.Trunc(x), 0
	}
	if x >= 0.5 {
		return 0.5, 1
	}
	if x >= 0.25 {
		return 0.25, 2
	}
	if x >= 0.2 {
		return 0.2, 1
	}
	if x >= 0.1 {
		return 0.1, 1
	}
	x, n := roundish(x * 10)
	return x / 10, n + 1
}

func reverseTicks(ticks []plot.Tick) []plot.Tick {
	l := len(ticks)
	for i := 0; i < l/2; i++ {
		ticks[i], ticks[l-i-1] = ticks[l-i-1], ticks[i]
	}
	return ticks
}

func tick(x float64, k int) plot.Tick {
	return plot.Tick{Value: x, Label: strconv.FormatFloat(x, 'f', k, 64)}
}

var one = plot.Tick{Value: 1.0, Label: "1.0"}
