//go:build linux

package nfhook

import (
	"encoding/binary"
	"fmt"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

const (
	rtmGetLink = 18
	iflaIfname = 3
)

// ifinfomsg mirrors the kernel's struct ifinfomsg header that precedes the
// attribute list in an RTM_GETLINK request/response.
type ifinfomsg struct {
	Family uint8
	_      uint8
	Type   uint16
	Index  int32
	Flags  uint32
	Change uint32
}

func (m ifinfomsg) marshal() []byte {
	buf := make([]byte, 16)
	buf[0] = m.Family
	binary.LittleEndian.PutUint16(buf[2:4], m.Type)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(m.Index))
	binary.LittleEndian.PutUint32(buf[8:12], m.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], m.Change)
	return buf
}

// LinkIndex asks the kernel, via RTM_GETLINK, for the interface index of
// name, so a caller can confirm a device actually exists on the host
// before registering a NETDEV ingress hook against it. Namespace.findChain
// and Register do not perform this lookup themselves.
func LinkIndex(name string) (int32, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return 0, fmt.Errorf("nfhook: dialing rtnetlink: %w", err)
	}
	defer conn.Close()

	ae := netlink.NewAttributeEncoder()
	ae.String(iflaIfname, name)
	attrs, err := ae.Encode()
	if err != nil {
		return 0, fmt.Errorf("nfhook: encoding IFLA_IFNAME: %w", err)
	}

	req := netlink.Message{
		Header: netlink.Header{
			Type:  netlink.HeaderType(rtmGetLink),
			Flags: netlink.Request | netlink.Acknowledge,
		},
		Data: append(ifinfomsg{Family: unix.AF_UNSPEC}.marshal(), attrs...),
	}

	replies, err := conn.Execute(req)
	if err != nil {
		return 0, fmt.Errorf("nfhook: RTM_GETLINK for %q: %w", name, err)
	}
	for _, reply := range replies {
		if len(reply.Data) < 16 {
			continue
		}
		return int32(binary.LittleEndian.Uint32(reply.Data[4:8])), nil
	}
	return 0, fmt.Errorf("nfhook: no link named %q", name)
}

// ResolveLinkIndex looks up d.Name's host interface index via rtnetlink
// and caches it on the device, so AFInfo adapters (linux_nft.go) and
// callers can confirm a NETDEV target actually exists on the host before
// trusting a registration against it.
func (d *Device) ResolveLinkIndex() error {
	idx, err := LinkIndex(d.Name)
	if err != nil {
		return err
	}
	d.ifIndex.Store(idx)
	return nil
}
