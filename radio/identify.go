package radio

import (
	"context"
	"fmt"
	"strings"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/link"
)

// Identity is what a radio reports about itself.
type Identity struct {
	APIProtocol  uint8
	APIMajor     uint8
	APIMinor     uint8
	Variant      string
	VersionMajor uint8
	VersionMinor uint8
	VersionPatch uint8
	BoardID      string
	HWRevision   uint16
	TargetName   string
	Build        link.BuildInfoData
}

// variantFamilies maps the 4 char firmware variant codes to registry
// families.
var variantFamilies = map[string]string{
	"OTX":  "opentx",
	"ER9X": "er9x",
	"TH9X": "th9x",
	"GRV9": "gruvin9x",
	"ERSK": "ersky9x",
}

func (id Identity) String() string {
	targetName := ""
	if id.TargetName != "" {
		targetName = ", target " + id.TargetName
	}
	return fmt.Sprintf("%s %d.%d.%d (board %s%s)", id.Variant, id.VersionMajor, id.VersionMinor, id.VersionPatch,
		id.BoardID, targetName)
}

func (id Identity) VersionAtLeast(major, minor, patch uint8) bool {
	return id.VersionMajor > major || (id.VersionMajor == major && id.VersionMinor > minor) ||
		(id.VersionMajor == major && id.VersionMinor == minor && id.VersionPatch >= patch)
}

func (id Identity) Board() firmware.Board {
	return firmware.BoardFromID(id.BoardID)
}

// Firmware picks the registry firmware matching the reported variant and
// board.
func (id Identity) Firmware(reg *firmware.Registry) (*firmware.Firmware, error) {
	board := id.Board()
	if board == firmware.BoardUnknown {
		return nil, fmt.Errorf("unknown board id %q", id.BoardID)
	}
	family, ok := variantFamilies[strings.ToUpper(strings.TrimSpace(id.Variant))]
	if !ok {
		return nil, fmt.Errorf("unknown firmware variant %q", id.Variant)
	}
	for _, f := range reg.ForBoard(board) {
		if f.Family() == family {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no %s firmware for board %s", family, board)
}

// Identify queries the radio for its protocol, firmware and board.
func (r *Radio) Identify(ctx context.Context) (Identity, error) {
	var id Identity

	fr, err := r.Request(ctx, link.ApiVersion)
	if err != nil {
		return id, err
	}
	var api link.ApiVersionData
	if err := fr.Read(&api); err != nil {
		return id, fmt.Errorf("decoding api version: %w", err)
	}
	id.APIProtocol, id.APIMajor, id.APIMinor = api.Protocol, api.Major, api.Minor
	r.logger.Debugf("API version %d.%d (protocol %d)", api.Major, api.Minor, api.Protocol)

	if fr, err = r.Request(ctx, link.FirmwareVariant); err != nil {
		return id, err
	}
	id.Variant = string(fr.Payload)

	if fr, err = r.Request(ctx, link.FirmwareVersion); err != nil {
		return id, err
	}
	var version link.FirmwareVersionData
	if err := fr.Read(&version); err != nil {
		return id, fmt.Errorf("decoding firmware version: %w", err)
	}
	id.VersionMajor, id.VersionMinor, id.VersionPatch = version.Major, version.Minor, version.Patch

	if fr, err = r.Request(ctx, link.BoardInfo); err != nil {
		return id, err
	}
	if err := readBoardInfo(&fr, &id); err != nil {
		return id, err
	}

	if fr, err = r.Request(ctx, link.BuildInfo); err != nil {
		return id, err
	}
	if id.Build, err = fr.ReadBuildInfo(); err != nil {
		return id, fmt.Errorf("decoding build info: %w", err)
	}

	r.logger.Infof("Found %s", id)
	return id, nil
}

func readBoardInfo(fr *link.Frame, id *Identity) error {
	var info link.BoardInfoData
	if err := fr.Read(&info); err != nil {
		return fmt.Errorf("decoding board info: %w", err)
	}
	id.BoardID = string(info.ID[:])
	id.HWRevision = info.HWRevision

	// Newer firmwares append the length of the target name and the name
	// itself.
	var n uint8
	if fr.Read(&n) == nil {
		if name, err := fr.ReadString(int(n)); err == nil {
			id.TargetName = name
		}
	}
	return nil
}
