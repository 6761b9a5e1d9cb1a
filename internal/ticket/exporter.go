package ticket

import (
	"errors"
	"fmt"
	"runtime"
)

// Export states
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateDone
	StateFailed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// BatchSize bounds how many pages are rendered between scheduler yields
const BatchSize = 10

// Exporter errors
var (
	ErrNoRecords     = errors.New("no records to export")
	ErrInvalidRecord = errors.New("record is missing a required field")
	ErrExportRunning = errors.New("an export is already running")
)

// ExportResult is the assembled document of a successful run
type ExportResult struct {
	PDF      []byte
	FileName string
	Pages    int
}

// Exporter turns an ordered record list into one multi-page document.
// Records are validated up front and rendered strictly sequentially in
// batches of BatchSize, yielding the scheduler between batches. Any
// failure aborts the whole run with no partial output.
type Exporter struct {
	newRenderer RendererFactory
	state       State
	batches     []int

	// yield runs between batches; replaced in tests
	yield func()
}

// NewExporter creates an Exporter producing one document per Export call
func NewExporter(factory RendererFactory) *Exporter {
	return &Exporter{
		newRenderer: factory,
		state:       StateIdle,
		yield:       runtime.Gosched,
	}
}

// State returns the state of the most recent run
func (e *Exporter) State() State {
	return e.state
}

// Batches returns the batch sizes processed by the most recent run
func (e *Exporter) Batches() []int {
	return e.batches
}

// Export renders every record into one page, in input order, and returns
// the assembled document. Validation is fail-fast: the first invalid
// record aborts before any page is rendered.
func (e *Exporter) Export(records []Record) (*ExportResult, error) {
	if e.state == StateGenerating {
		return nil, ErrExportRunning
	}
	if len(records) == 0 {
		e.state = StateFailed
		return nil, ErrNoRecords
	}

	// Validate the full list before touching the renderer
	for i := range records {
		if missing := records[i].validate(); missing != "" {
			e.state = StateFailed
			return nil, fmt.Errorf("record %d: %w: %s", i, ErrInvalidRecord, missing)
		}
	}

	e.state = StateGenerating
	e.batches = nil
	renderer := e.newRenderer()

	for start := 0; start < len(records); start += BatchSize {
		end := start + BatchSize
		if end > len(records) {
			end = len(records)
		}

		for i := start; i < end; i++ {
			if err := e.renderOne(renderer, records[i]); err != nil {
				e.state = StateFailed
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}

		e.batches = append(e.batches, end-start)
		if end < len(records) {
			e.yield()
		}
	}

	pdf, err := renderer.Output()
	if err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.state = StateDone
	return &ExportResult{
		PDF:      pdf,
		FileName: FileName(records[0].BookingCode),
		Pages:    len(records),
	}, nil
}

func (e *Exporter) renderOne(renderer PageRenderer, r Record) error {
	payload := QRPayload(r.TicketNumber, r.Passenger.DocumentNumber, r.Flight.Date)
	qr, err := EncodeQR(payload)
	if err != nil {
		return err
	}
	return renderer.AddPage(BuildPageData(r), qr)
}

// FileName derives the download name of an export from its originating
// booking code
func FileName(bookingCode string) string {
	return fmt.Sprintf("tickets-%s.pdf", bookingCode)
}
