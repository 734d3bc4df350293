// Package analysis extracts oscillation characteristics from trajectories.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

// FFT computes the discrete Fourier transform by radix-2 recursion. The
// input length must be a power of two; PowerSpectrum and
// DominantFrequency truncate arbitrary inputs before calling it.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns bin magnitudes for the first half of the
// spectrum. Inputs are truncated to the largest power-of-2 length.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data[:floorPow2(len(data))])
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

func floorPow2(n int) int {
	if n < 1 {
		return 0
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// DominantFrequency estimates the strongest oscillation frequency (Hz) in
// the position signal. The signal is mean-centered and truncated to a
// power-of-2 length. Returns 0 for trajectories too short to analyze.
func DominantFrequency(traj *dynamo.Trajectory) float64 {
	n := traj.Len()
	if n < 4 {
		return 0
	}

	pow2 := floorPow2(n)

	mean := 0.0
	for i := 0; i < pow2; i++ {
		mean += traj.Positions[i]
	}
	mean /= float64(pow2)

	data := make([]float64, pow2)
	for i := range data {
		data[i] = traj.Positions[i] - mean
	}

	ps := PowerSpectrum(data)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	span := traj.Times[pow2-1] - traj.Times[0]
	if span <= 0 {
		return 0
	}
	dt := span / float64(pow2-1)
	return float64(peak) / (float64(pow2) * dt)
}

// DampingRatio estimates the damping ratio from the logarithmic decrement
// of successive position peaks. Returns NaN when fewer than two peaks
// exist (overdamped or monotone trajectories).
func DampingRatio(traj *dynamo.Trajectory) float64 {
	peaks := positionPeaks(traj)
	if len(peaks) < 2 {
		return math.NaN()
	}

	sum := 0.0
	count := 0
	for i := 1; i < len(peaks); i++ {
		if peaks[i] <= 0 || peaks[i-1] <= 0 {
			continue
		}
		sum += math.Log(peaks[i-1] / peaks[i])
		count++
	}
	if count == 0 {
		return math.NaN()
	}

	delta := sum / float64(count)
	return delta / math.Sqrt(4*math.Pi*math.Pi+delta*delta)
}

// positionPeaks collects |position| at local maxima of the oscillation
// around the mean.
func positionPeaks(traj *dynamo.Trajectory) []float64 {
	n := traj.Len()
	if n < 3 {
		return nil
	}

	mean := 0.0
	for i := 0; i < n; i++ {
		mean += traj.Positions[i]
	}
	mean /= float64(n)

	peaks := make([]float64, 0, 8)
	for i := 1; i < n-1; i++ {
		prev := traj.Positions[i-1] - mean
		cur := traj.Positions[i] - mean
		next := traj.Positions[i+1] - mean
		if cur > prev && cur >= next && cur > 0 {
			peaks = append(peaks, cur)
		}
	}
	return peaks
}
