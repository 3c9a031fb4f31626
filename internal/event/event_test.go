package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "ScanStarted", typ: ScanStarted},
		{want: "ScanComplete", typ: ScanComplete},
		{want: "ArchiveStarted", typ: ArchiveStarted},
		{want: "ArchiveCompleted", typ: ArchiveCompleted},
		{want: "ArchiveFailed", typ: ArchiveFailed},
		{want: "EntryExtracted", typ: EntryExtracted},
		{want: "EntryFailed", typ: EntryFailed},
		{want: "EntrySkipped", typ: EntrySkipped},
		{want: "TraversalRejected", typ: TraversalRejected},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
}
