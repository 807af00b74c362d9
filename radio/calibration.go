package radio

import (
	"context"
	"fmt"

	"github.com/gtu-nova/nova-companion/link"
	"github.com/gtu-nova/nova-companion/model"
)

// ReadCalibration copies the stick and pot calibration of the radio into
// settings. Entries beyond what settings can hold are ignored.
func (r *Radio) ReadCalibration(ctx context.Context, settings *model.GeneralSettings) error {
	fr, err := r.Request(ctx, link.Calibration)
	if err != nil {
		return err
	}

	var count uint8
	if err := fr.Read(&count); err != nil {
		return fmt.Errorf("decoding calibration: %w", err)
	}
	entries := make([]link.CalibrationEntry, count)
	if err := fr.Read(entries); err != nil {
		return fmt.Errorf("decoding calibration: %w", err)
	}

	for i, e := range entries {
		if i >= model.NumCalibrated {
			r.logger.Warnf("Ignoring %d extra calibration entries", len(entries)-i)
			break
		}
		settings.CalibMid[i] = int(e.Mid)
		settings.CalibSpanNeg[i] = int(e.SpanNeg)
		settings.CalibSpanPos[i] = int(e.SpanPos)
	}
	return nil
}

// WriteCalibration sends the calibration of settings to the radio and
// has it saved to EEPROM.
func (r *Radio) WriteCalibration(ctx context.Context, settings *model.GeneralSettings) error {
	entries := make([]link.CalibrationEntry, model.NumCalibrated)
	for i := range entries {
		entries[i] = link.CalibrationEntry{
			Mid:     int16(settings.CalibMid[i]),
			SpanNeg: int16(settings.CalibSpanNeg[i]),
			SpanPos: int16(settings.CalibSpanPos[i]),
		}
	}

	if _, err := r.Request(ctx, link.SetCalibration, uint8(len(entries)), entries); err != nil {
		return err
	}
	if _, err := r.Request(ctx, link.EepromWrite); err != nil {
		return fmt.Errorf("saving calibration: %w", err)
	}
	return nil
}
