package snapshot

import (
	"io"

	"github.com/katalvlaran/envmatch/geom"
	"github.com/katalvlaran/envmatch/matchenv"
)

// Report modes.
const (
	ModeCluster = "cluster"
	ModeMotif   = "motif"
)

// ClusterEntry describes one cluster of a report.
//
// Average holds one entry per slot; slots no member fills are null.
type ClusterEntry struct {
	Label   int           `json:"label"`
	Size    int           `json:"size"`
	Members []uint32      `json:"members"`
	Average []*[3]float64 `json:"average"`
}

// Report is the serialized outcome of a Cluster or MatchMotif run.
type Report struct {
	Mode      string  `json:"mode"`
	Threshold float64 `json:"threshold"`
	Particles int     `json:"particles"`

	// Cluster mode.
	Labels   []int          `json:"labels,omitempty"`
	Clusters []ClusterEntry `json:"clusters,omitempty"`

	// Motif mode.
	Matches []uint32      `json:"matches,omitempty"`
	Count   int           `json:"count"`
	Motif   []*[3]float64 `json:"motif_average,omitempty"`
}

// ClusterReport summarizes c.
func ClusterReport(c *matchenv.Clusters, threshold float64) (*Report, error) {
	r := &Report{
		Mode:      ModeCluster,
		Threshold: threshold,
		Particles: c.NumParticles(),
		Labels:    c.Labels(),
		Clusters:  make([]ClusterEntry, 0, c.NumClusters()),
		Count:     c.NumClusters(),
	}
	for label := 0; label < c.NumClusters(); label++ {
		members, err := c.Members(label)
		if err != nil {
			return nil, err
		}
		avg, err := c.Average(label)
		if err != nil {
			return nil, err
		}
		r.Clusters = append(r.Clusters, ClusterEntry{
			Label:   label,
			Size:    int(members.GetCardinality()),
			Members: members.ToArray(),
			Average: slots(avg),
		})
	}

	return r, nil
}

// MotifReport summarizes mm.
func MotifReport(mm *matchenv.MotifMatch, threshold float64) *Report {
	return &Report{
		Mode:      ModeMotif,
		Threshold: threshold,
		Particles: mm.NumParticles(),
		Matches:   mm.Members().ToArray(),
		Count:     mm.Count(),
		Motif:     slots(mm.Average()),
	}
}

// WriteReport encodes r to w as indented JSON.
func WriteReport(w io.Writer, r *Report, c Compression) error {
	return writeJSON(w, r, c)
}

// SaveReport writes r to path, compressing by extension.
func SaveReport(path string, r *Report) error {
	return writeFile(path, r)
}

// slots converts slot vectors to JSON, mapping NaN slots to null.
func slots(vs []geom.Vec3) []*[3]float64 {
	out := make([]*[3]float64, len(vs))
	for i, v := range vs {
		if v.IsNaN() {
			continue
		}
		a := v.Array()
		out[i] = &a
	}
	return out
}
