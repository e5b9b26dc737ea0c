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
	"github.com/poiesic/grantmatch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalGrant serializes a Grant to bytes.
func MarshalGrant(grant *core.Grant) []byte {
	buf := make([]byte, core.GrantMUS.Size(*grant))
	core.GrantMUS.Marshal(*grant, buf)
	return buf
}

// UnmarshalGrant deserializes a Grant from bytes.
func UnmarshalGrant(data []byte) (*core.Grant, error) {
	grant, _, err := core.GrantMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}
