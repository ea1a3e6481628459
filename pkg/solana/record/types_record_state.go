package record

type RecordState uint8

const (
	RecordStateUninitialized RecordState = iota
	RecordStateInitialized
	RecordStateUpdated
)

func getRecordState(src []byte, dst *RecordState, offset *int) {
	*dst = RecordState(src[*offset])
	*offset += 1
}

func putRecordState(dst []byte, v RecordState, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

func (s RecordState) isValid() bool {
	return s <= RecordStateUpdated
}

func (s RecordState) String() string {
	switch s {
	case RecordStateUninitialized:
		return "uninitialized"
	case RecordStateInitialized:
		return "initialized"
	case RecordStateUpdated:
		return "updated"
	}
	return "unknown"
}
