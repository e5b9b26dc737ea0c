// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	ptrIQΣZPoms2oVH3PRDCGzLbQΞΞ   = ord.NewPtrSer[time.Time](raw.TimeUnixMicro)
	ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ   = ord.NewPtrSer[int](varint.Int)
	ptrl771hveDdΣ2RPV74CbQaHgΞΞ   = ord.NewPtrSer[int64](varint.Int64)
	sliceCmqΔHHyCxwPsJzΔNfH81xwΞΞ = ord.NewSliceSer[float32](varint.Float32)
	slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var GrantMUS = grantMUS{}

type grantMUS struct{}

func (s grantMUS) Marshal(v Grant, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.FundingBody, bs[n:])
	n += ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Marshal(v.AmountMin, bs[n:])
	n += ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Marshal(v.AmountMax, bs[n:])
	n += ptrIQΣZPoms2oVH3PRDCGzLbQΞΞ.Marshal(v.Deadline, bs[n:])
	n += slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Marshal(v.Tags, bs[n:])
	n += ord.String.Marshal(v.ApplicationURL, bs[n:])
	n += slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Marshal(v.EligibleCountries, bs[n:])
	n += ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Marshal(v.MinTRL, bs[n:])
	n += ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Marshal(v.MaxTRL, bs[n:])
	n += sliceCmqΔHHyCxwPsJzΔNfH81xwΞΞ.Marshal(v.Embedding, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s grantMUS) Unmarshal(bs []byte) (v Grant, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FundingBody, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AmountMin, n1, err = ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AmountMax, n1, err = ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Deadline, n1, err = ptrIQΣZPoms2oVH3PRDCGzLbQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ApplicationURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EligibleCountries, n1, err = slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MinTRL, n1, err = ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MaxTRL, n1, err = ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Embedding, n1, err = sliceCmqΔHHyCxwPsJzΔNfH81xwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s grantMUS) Size(v Grant) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.FundingBody)
	size += ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Size(v.AmountMin)
	size += ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Size(v.AmountMax)
	size += ptrIQΣZPoms2oVH3PRDCGzLbQΞΞ.Size(v.Deadline)
	size += slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Size(v.Tags)
	size += ord.String.Size(v.ApplicationURL)
	size += slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Size(v.EligibleCountries)
	size += ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Size(v.MinTRL)
	size += ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Size(v.MaxTRL)
	size += sliceCmqΔHHyCxwPsJzΔNfH81xwΞΞ.Size(v.Embedding)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s grantMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ptrl771hveDdΣ2RPV74CbQaHgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ptrIQΣZPoms2oVH3PRDCGzLbQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicetqSLpDSMtΣbkhY5Zquh1iAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ptrJ6KynTaMHwPeΔPLZfR2opQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceCmqΔHHyCxwPsJzΔNfH81xwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
