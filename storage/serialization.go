// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/newscout/core"
)

// MessageMUS is the MUS serializer for core.Message. Timestamps are stored
// as UnixNano and restored in UTC.
var MessageMUS = messageMUS{}

type messageMUS struct{}

func (s messageMUS) Marshal(v core.Message, bs []byte) (n int) {
	n = varint.Int.Marshal(int(v.Role), bs)
	n += ord.String.Marshal(v.Content, bs[n:])
	return n + varint.Int64.Marshal(v.CreatedAt.UnixNano(), bs[n:])
}

func (s messageMUS) Unmarshal(bs []byte) (v core.Message, n int, err error) {
	role, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Role = core.Role(role)
	var n1 int
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var nanos int64
	nanos, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt = time.Unix(0, nanos).UTC()
	return
}

func (s messageMUS) Size(v core.Message) (size int) {
	size = varint.Int.Size(int(v.Role))
	size += ord.String.Size(v.Content)
	return size + varint.Int64.Size(v.CreatedAt.UnixNano())
}

func (s messageMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}

// MarshalMessage serializes a Message to bytes.
func MarshalMessage(msg *core.Message) []byte {
	buf := make([]byte, MessageMUS.Size(*msg))
	MessageMUS.Marshal(*msg, buf)
	return buf
}

// UnmarshalMessage deserializes a Message from bytes.
func UnmarshalMessage(data []byte) (*core.Message, error) {
	msg, _, err := MessageMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &msg, nil
}
