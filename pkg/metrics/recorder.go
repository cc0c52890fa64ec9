package metrics

import "sync"

// Sample é uma chamada registrada pelo Recorder.
type Sample struct {
	Type  string
	Name  string
	Value float64
	Tags  []string
}

// Recorder guarda as métricas em memória. Usado em testes e em execução
// local para inspecionar o que seria enviado ao agente.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

func (r *Recorder) record(typ, name string, value float64, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{Type: typ, Name: name, Value: value, Tags: tags})
	return nil
}

func (r *Recorder) Count(name string, value float64, tags []string) error {
	return r.record("count", name, value, tags)
}

func (r *Recorder) Gauge(name string, value float64, tags []string) error {
	return r.record("gauge", name, value, tags)
}

func (r *Recorder) Histogram(name string, value float64, tags []string) error {
	return r.record("histogram", name, value, tags)
}

// Samples retorna uma cópia das métricas registradas.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

// Total soma os valores registrados para name.
func (r *Recorder) Total(name string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, s := range r.samples {
		if s.Name == name {
			total += s.Value
		}
	}
	return total
}
