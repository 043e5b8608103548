package writers

import (
	"io"

	"bsprimer/internal/jsonutil"
)

func init() {
	for _, k := range []Kind{Strands, Thermo, Structure, Search, Project, Projects, Check} {
		Register(k, "json", writeJSON)
	}
}

func writeJSON(w io.Writer, payload any) error {
	return jsonutil.EncodePretty(w, payload)
}
