package layout

import (
	"encoding/json"
	"os"
)

// DebugEntry is one source in the layout dump.
type DebugEntry struct {
	Source string  `json:"source"`
	Canvas [2]int  `json:"canvas"` // width, height
	Offset [2]int  `json:"offset"` // x, y added to every line
	Layout *Result `json:"layout"`
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(entries []DebugEntry, path string) error {
	if len(entries) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
