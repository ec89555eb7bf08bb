package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile gathers everything registered in registry and writes it to
// path in the Prometheus text exposition format, suitable for the node
// exporter's textfile collector. The file is replaced atomically.
func WriteTextfile(registry *prometheus.Registry, path string) error {
	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return fmt.Errorf("write metrics file %s: %w", path, err)
	}

	return nil
}
