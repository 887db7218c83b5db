package pdftext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPDF(t *testing.T) {
	require.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	require.False(t, IsPDF([]byte("<!DOCTYPE html><html>")))
	require.False(t, IsPDF(nil))
}

func TestExtractRejectsNonPDF(t *testing.T) {
	_, err := Extract([]byte("<html>not found</html>"))
	require.ErrorIs(t, err, NotPDF)
}
