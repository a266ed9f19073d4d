package response

// Binary is the reassembled result of a chunked binary transfer such as
// "albumart" or "readpicture".
//
// Metadata keeps the server's "size" field as sent. It announces the total
// length; Size reports the bytes actually received.
type Binary struct {
	// Metadata holds the non-binary fields of the first chunk, including
	// "size" when the server sent it. The "binary" field is never present.
	Metadata Record

	// Data is the concatenated payload.
	Data []byte

	// HasBinary is false when the server returned metadata only.
	HasBinary bool
}

// Size returns the payload length.
func (b *Binary) Size() int { return len(b.Data) }
