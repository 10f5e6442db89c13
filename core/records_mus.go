package core

// Hand-written MUS serializers for the stored record types. Field order is
// the wire format: changing it breaks existing databases.

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Serializer instances for the stored record types.
var (
	IDMUS         = idMUS{}
	TenderMUS     = tenderMUS{}
	ExperienceMUS = experienceMUS{}
	CheckpointMUS = checkpointMUS{}
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (s idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// Timestamps are stored as unix microseconds.

func marshalTime(v time.Time, bs []byte) int {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(v time.Time) int {
	return varint.Int64.Size(v.UnixMicro())
}

// Optional values carry a presence flag followed by the value itself.

func marshalTimePtr(v *time.Time, bs []byte) int {
	n := ord.Bool.Marshal(v != nil, bs)
	if v != nil {
		n += marshalTime(*v, bs[n:])
	}
	return n
}

func unmarshalTimePtr(bs []byte) (*time.Time, int, error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, n1, err := unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

func sizeTimePtr(v *time.Time) int {
	size := ord.Bool.Size(v != nil)
	if v != nil {
		size += sizeTime(*v)
	}
	return size
}

func marshalFloat64Ptr(v *float64, bs []byte) int {
	n := ord.Bool.Marshal(v != nil, bs)
	if v != nil {
		n += raw.Float64.Marshal(*v, bs[n:])
	}
	return n
}

func unmarshalFloat64Ptr(bs []byte) (*float64, int, error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	v, n1, err := raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &v, n, nil
}

func sizeFloat64Ptr(v *float64) int {
	size := ord.Bool.Size(v != nil)
	if v != nil {
		size += raw.Float64.Size(*v)
	}
	return size
}

func marshalStringSlice(v []string, bs []byte) int {
	n := varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStringSlice(bs []byte) ([]string, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	result := make([]string, length)
	for i := 0; i < length; i++ {
		s, n1, err := ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		result[i] = s
	}
	return result, n, nil
}

func sizeStringSlice(v []string) int {
	size := varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

type tenderMUS struct{}

func (s tenderMUS) Marshal(v Tender, bs []byte) int {
	n := IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ExternalId, bs[n:])
	n += varint.Int.Marshal(int(v.Source), bs[n:])
	n += ord.String.Marshal(v.EntityName, bs[n:])
	n += ord.String.Marshal(v.ObjectText, bs[n:])
	n += ord.String.Marshal(v.Department, bs[n:])
	n += ord.String.Marshal(v.Municipality, bs[n:])
	n += marshalFloat64Ptr(v.Amount, bs[n:])
	n += marshalTimePtr(v.PublicationDate, bs[n:])
	n += marshalTimePtr(v.ClosingDate, bs[n:])
	n += ord.String.Marshal(v.State, bs[n:])
	n += ord.String.Marshal(v.ProcessURL, bs[n:])
	n += ord.String.Marshal(v.ContractType, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s tenderMUS) Unmarshal(bs []byte) (v Tender, n int, err error) {
	var n1 int
	if v.Id, n1, err = IDMUS.Unmarshal(bs); err != nil {
		return v, n1, err
	}
	n = n1
	if v.ExternalId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var source int
	if source, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Source = TenderSource(source)
	n += n1
	if v.EntityName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ObjectText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Department, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Municipality, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Amount, n1, err = unmarshalFloat64Ptr(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PublicationDate, n1, err = unmarshalTimePtr(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ClosingDate, n1, err = unmarshalTimePtr(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.State, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ProcessURL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ContractType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s tenderMUS) Size(v Tender) int {
	size := IDMUS.Size(v.Id)
	size += ord.String.Size(v.ExternalId)
	size += varint.Int.Size(int(v.Source))
	size += ord.String.Size(v.EntityName)
	size += ord.String.Size(v.ObjectText)
	size += ord.String.Size(v.Department)
	size += ord.String.Size(v.Municipality)
	size += sizeFloat64Ptr(v.Amount)
	size += sizeTimePtr(v.PublicationDate)
	size += sizeTimePtr(v.ClosingDate)
	size += ord.String.Size(v.State)
	size += ord.String.Size(v.ProcessURL)
	size += ord.String.Size(v.ContractType)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s tenderMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

type experienceMUS struct{}

func (s experienceMUS) Marshal(v Experience, bs []byte) int {
	n := IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.CompanyName, bs[n:])
	n += ord.String.Marshal(v.ContractNumber, bs[n:])
	n += ord.String.Marshal(v.ProjectDescription, bs[n:])
	n += ord.String.Marshal(v.ContractingEntity, bs[n:])
	n += marshalTimePtr(v.CompletionDate, bs[n:])
	n += marshalFloat64Ptr(v.Amount, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.EngineeringArea, bs[n:])
	n += ord.String.Marshal(v.Department, bs[n:])
	n += ord.String.Marshal(v.Municipality, bs[n:])
	n += marshalStringSlice(v.Keywords, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s experienceMUS) Unmarshal(bs []byte) (v Experience, n int, err error) {
	var n1 int
	if v.Id, n1, err = IDMUS.Unmarshal(bs); err != nil {
		return v, n1, err
	}
	n = n1
	if v.CompanyName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ContractNumber, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ProjectDescription, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ContractingEntity, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CompletionDate, n1, err = unmarshalTimePtr(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Amount, n1, err = unmarshalFloat64Ptr(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.EngineeringArea, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Department, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Municipality, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Keywords, n1, err = unmarshalStringSlice(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s experienceMUS) Size(v Experience) int {
	size := IDMUS.Size(v.Id)
	size += ord.String.Size(v.CompanyName)
	size += ord.String.Size(v.ContractNumber)
	size += ord.String.Size(v.ProjectDescription)
	size += ord.String.Size(v.ContractingEntity)
	size += sizeTimePtr(v.CompletionDate)
	size += sizeFloat64Ptr(v.Amount)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.EngineeringArea)
	size += ord.String.Size(v.Department)
	size += ord.String.Size(v.Municipality)
	size += sizeStringSlice(v.Keywords)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s experienceMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) int {
	n := ord.String.Marshal(v.JobName, bs)
	n += marshalTime(v.LastRun, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	var n1 int
	if v.JobName, n1, err = ord.String.Unmarshal(bs); err != nil {
		return v, n1, err
	}
	n = n1
	if v.LastRun, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s checkpointMUS) Size(v Checkpoint) int {
	size := ord.String.Size(v.JobName)
	size += sizeTime(v.LastRun)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s checkpointMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}
