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

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted record types. Fields are encoded in
// struct declaration order; changing the order is a breaking format change.

var (
	IDMUS          = idMUS{}
	OutcomeMUS     = outcomeMUS{}
	ConceptMUS     = conceptMUS{}
	PatternRuleMUS = patternRuleMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
	outcomesMUS    = ord.NewSliceSer[Outcome](OutcomeMUS)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type outcomeMUS struct{}

func (s outcomeMUS) Marshal(v Outcome, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += raw.Float64.Marshal(v.Prior, bs[n:])
	n += stringSliceMUS.Marshal(v.Suggestions, bs[n:])
	return n
}

func (s outcomeMUS) Unmarshal(bs []byte) (v Outcome, n int, err error) {
	var n1 int
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Prior, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Suggestions, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s outcomeMUS) Size(v Outcome) (size int) {
	size = ord.String.Size(v.Name)
	size += raw.Float64.Size(v.Prior)
	size += stringSliceMUS.Size(v.Suggestions)
	return size
}

func (s outcomeMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	return n, err
}

type conceptMUS struct{}

func (s conceptMUS) Marshal(v Concept, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Label, bs[n:])
	n += stringSliceMUS.Marshal(v.Synonyms, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += outcomesMUS.Marshal(v.Outcomes, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	return n
}

func (s conceptMUS) Unmarshal(bs []byte) (v Concept, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Label, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Synonyms, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Outcomes, n1, err = outcomesMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s conceptMUS) Size(v Concept) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Label)
	size += stringSliceMUS.Size(v.Synonyms)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.Description)
	size += outcomesMUS.Size(v.Outcomes)
	size += vectorMUS.Size(v.Vector)
	return size
}

func (s conceptMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip, stringSliceMUS.Skip, ord.String.Skip,
		ord.String.Skip, outcomesMUS.Skip, vectorMUS.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, err
}

type patternRuleMUS struct{}

func (s patternRuleMUS) Marshal(v PatternRule, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += stringSliceMUS.Marshal(v.Triggers, bs[n:])
	n += ord.String.Marshal(v.Rationale, bs[n:])
	n += stringSliceMUS.Marshal(v.Suggestions, bs[n:])
	return n
}

func (s patternRuleMUS) Unmarshal(bs []byte) (v PatternRule, n int, err error) {
	var n1 int
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Triggers, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Rationale, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Suggestions, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s patternRuleMUS) Size(v PatternRule) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += stringSliceMUS.Size(v.Triggers)
	size += ord.String.Size(v.Rationale)
	size += stringSliceMUS.Size(v.Suggestions)
	return size
}

func (s patternRuleMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip, stringSliceMUS.Skip, ord.String.Skip, stringSliceMUS.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, err
}
