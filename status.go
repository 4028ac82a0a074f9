package viewerpdf

// Reporter receives the progress of a capture as it happens.
type Reporter interface {
	// Status is called with every human-readable status change.
	Status(msg string)

	// Progress is called after each page with the number of pages done
	// and the total number of pages.
	Progress(done, total int)
}

type nopReporter struct{}

func (nopReporter) Status(string)     {}
func (nopReporter) Progress(int, int) {}

// Status messages shown during a run.
const (
	msgPreparing    = "Preparing to convert document..."
	msgWrongHost    = "❌ This tool only works on Google Docs pages."
	msgNoPages      = "❌ No document pages found! Make sure to scroll through the entire document first."
	msgEngineFailed = "❌ Failed to start the browser engine. Check your Chrome installation."
	msgFailed       = "❌ Conversion failed: "
	msgPDFDone      = "✅ PDF downloaded successfully!"
	msgHighResDone  = "✅ High-resolution PDF downloaded successfully!"
)
