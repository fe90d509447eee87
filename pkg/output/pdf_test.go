package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFReport(t *testing.T) {
	data, err := PDFReport(sampleResults(t))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, "%PDF", string(data[:4]), "output should start with the PDF magic bytes")
}

func TestPDFReportEmptyResults(t *testing.T) {
	data, err := PDFReport(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data, "an empty comparison still produces the title page")
}
