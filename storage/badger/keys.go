package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	messagePrefix = "conv"
	messageIDSeq  = "convseq"
)

// makeMessageKey generates a composite key for one conversation message.
// Format: prefix:len(sessionID):sessionID:seq
func makeMessageKey(sessionID string, seq uint64) []byte {
	buf := makeSessionPrefix(sessionID)
	// Write in BigEndian order so lexicographic sort works correctly
	return binary.BigEndian.AppendUint64(buf, seq)
}

// makeSessionPrefix generates the key prefix shared by all messages of one
// session. The session id is length-prefixed so that no id's key range can
// extend another's ("alice" versus "alice:evil").
func makeSessionPrefix(sessionID string) []byte {
	buf := make([]byte, 0, len(messagePrefix)+1+4+len(sessionID)+8)
	buf = append(buf, messagePrefix...)
	buf = append(buf, ':')
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(sessionID)))
	return append(buf, sessionID...)
}
