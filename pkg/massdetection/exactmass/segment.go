package exactmass

// run is one contiguous stretch of positive intensity together with the
// alternating local extrema found inside it.
//
// start is the sample just before the first positive one; end is the zero
// sample that terminated the run, or len(v) when the run reaches the last
// sample with positive intensity.
type run struct {
	start, end int
	maxima     []int
	minima     []int
}

// segment splits the intensity profile into runs in a single pass.
//
// Only samples 1..n-2 are tested as extrema, and only strict ones count, so a
// plateau is never a peak. Inside a run the search alternates between
// looking for a maximum and looking for a minimum, starting with a maximum.
func segment(v []float64) []run {
	last := len(v) - 2
	var runs []run

	for i := 1; i <= last; i++ {
		for i <= last && v[i] <= 0 {
			i++
		}
		if i > last {
			break
		}

		r := run{start: i - 1}
		seekMax := true
		for i <= last && v[i] > 0 {
			if seekMax {
				if v[i-1] < v[i] && v[i] > v[i+1] {
					r.maxima = append(r.maxima, i)
					seekMax = false
				}
			} else if v[i-1] > v[i] && v[i] < v[i+1] {
				r.minima = append(r.minima, i)
				seekMax = true
			}
			i++
		}
		r.end = i
		if i > last && v[i] > 0 {
			r.end = len(v)
		}

		runs = append(runs, r)
	}

	return runs
}
