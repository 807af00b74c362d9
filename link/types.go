package link

type ApiVersionData struct {
	Protocol uint8
	Major    uint8
	Minor    uint8
}

type FirmwareVersionData struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// BoardInfoData is the fixed head of a BoardInfo reply. A target name
// length and the name itself may follow.
type BoardInfoData struct {
	ID         [4]uint8
	HWRevision uint16
	Reserved   uint16
}

// CalibrationEntry is the calibration of one stick or pot, in raw ADC
// units. A Calibration reply carries a count byte and that many entries.
type CalibrationEntry struct {
	Mid     int16
	SpanNeg int16
	SpanPos int16
}

const (
	buildDateLength = 11
	buildTimeLength = 8
)

type BuildInfoData struct {
	Date     string
	Time     string
	Revision string
}

// ReadBuildInfo decodes a BuildInfo payload: date, time, then the
// revision up to the end of the frame.
func (f *Frame) ReadBuildInfo() (BuildInfoData, error) {
	var info BuildInfoData
	var err error
	if info.Date, err = f.ReadString(buildDateLength); err != nil {
		return info, err
	}
	if info.Time, err = f.ReadString(buildTimeLength); err != nil {
		return info, err
	}
	info.Revision, err = f.ReadString(f.BytesRemaining())
	return info, err
}
