package printer

import (
	"encoding/json"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

// jsonDump represents a process dump in JSON format. Data is base64 encoded.
type jsonDump struct {
	PID   pagesim.PID `json:"pid"`
	Bytes int         `json:"bytes"`
	Data  []byte      `json:"data"`
}

// writeJSON writes v as indented JSON followed by a newline.
func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
