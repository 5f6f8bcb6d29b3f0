/*
 * Cadence HRTB - Rank-N trait bound analysis
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/pretty"
)

var encMode = func() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	encMode, err := options.EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

var decMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthForbidden,
		IntDec:           cbor.IntDecConvertNone,
		MaxArrayElements: 1_000_000,
		MaxMapPairs:      1_000_000,
		MaxNestedLevels:  math.MaxInt8,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return decMode
}()

// EncodeCBOR encodes the reports in deterministic CBOR,
// so equal reports have equal encodings
func EncodeCBOR(reports []*Report) ([]byte, error) {
	data, err := encMode.Marshal(reports)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reports: %w", err)
	}
	return data, nil
}

// DecodeCBOR decodes reports encoded with EncodeCBOR
func DecodeCBOR(data []byte) ([]*Report, error) {
	var reports []*Report
	if err := decMode.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// EncodeJSON encodes the reports in JSON.
// Indented output has one field per line and sorted keys.
func EncodeJSON(reports []*Report, indent bool) ([]byte, error) {
	if reports == nil {
		reports = []*Report{}
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	// the angle brackets of quantifiers stay unescaped
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(reports); err != nil {
		return nil, fmt.Errorf("failed to encode reports: %w", err)
	}
	data := bytes.TrimSuffix(buffer.Bytes(), []byte{'\n'})

	if indent {
		data = pretty.PrettyOptions(data, &pretty.Options{
			Width:    80,
			Prefix:   "",
			Indent:   "  ",
			SortKeys: true,
		})
	}

	return data, nil
}

// DecodeJSON decodes reports encoded with EncodeJSON
func DecodeJSON(data []byte) ([]*Report, error) {
	var reports []*Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}
