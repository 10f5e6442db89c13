// Copyright 2025 LicitIA
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
	"github.com/licitia/radar/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalTender serializes a Tender to bytes.
func MarshalTender(tender *core.Tender) []byte {
	buf := make([]byte, core.TenderMUS.Size(*tender))
	core.TenderMUS.Marshal(*tender, buf)
	return buf
}

// UnmarshalTender deserializes a Tender from bytes.
func UnmarshalTender(data []byte) (*core.Tender, error) {
	tender, _, err := core.TenderMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

// MarshalExperience serializes an Experience to bytes.
func MarshalExperience(experience *core.Experience) []byte {
	buf := make([]byte, core.ExperienceMUS.Size(*experience))
	core.ExperienceMUS.Marshal(*experience, buf)
	return buf
}

// UnmarshalExperience deserializes an Experience from bytes.
func UnmarshalExperience(data []byte) (*core.Experience, error) {
	experience, _, err := core.ExperienceMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
