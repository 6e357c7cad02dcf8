package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/synapse/internal/runner"
)

// WriteSamples writes samples as frames.csv rows with a header.
func WriteSamples(out io.Writer, samples []runner.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	for _, sm := range samples {
		row := []string{
			strconv.Itoa(sm.Frame),
			strconv.Itoa(sm.Nodes),
			strconv.Itoa(sm.Particles),
			strconv.Itoa(sm.Links),
			strconv.FormatFloat(sm.MeanAlpha, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type ExportData struct {
	Run     RunMetadata     `json:"run"`
	Samples []runner.Sample `json:"samples"`
}

func ExportJSON(out io.Writer, meta RunMetadata, samples []runner.Sample) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Samples: samples})
}
