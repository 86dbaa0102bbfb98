package status

import (
	"fmt"

	"github.com/Wifx/gonetworkmanager/v3"
)

// NM reads Wi-Fi state from NetworkManager over D-Bus.
type NM struct {
	nm gonetworkmanager.NetworkManager
}

func NewNM() (*NM, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("connect to NetworkManager: %w", err)
	}
	return &NM{nm: nm}, nil
}

func (n *NM) WiFi() (WiFi, error) {
	var w WiFi

	networking, err := n.nm.GetPropertyNetworkingEnabled()
	if err != nil {
		return w, err
	}
	wireless, err := n.nm.GetPropertyWirelessEnabled()
	if err != nil {
		return w, err
	}
	w.Enabled = networking && wireless
	if !w.Enabled {
		return w, nil
	}

	state, err := n.nm.GetPropertyState()
	if err != nil {
		return w, err
	}
	w.State = stateLabel(state)
	switch state {
	case gonetworkmanager.NmStateConnectedGlobal:
		w.Connected, w.Online = true, true
	case gonetworkmanager.NmStateConnectedLocal, gonetworkmanager.NmStateConnectedSite:
		w.Connected = true
	}
	if !w.Connected {
		return w, nil
	}

	devices, err := n.nm.GetPropertyAllDevices()
	if err != nil {
		return w, err
	}
	for _, dev := range devices {
		kind, err := dev.GetPropertyDeviceType()
		if err != nil || kind != gonetworkmanager.NmDeviceTypeWifi {
			continue
		}
		wifiDev, err := gonetworkmanager.NewDeviceWireless(dev.GetPath())
		if err != nil {
			continue
		}
		ap, err := wifiDev.GetPropertyActiveAccessPoint()
		if err != nil || ap == nil {
			continue
		}
		if ssid, err := ap.GetPropertySSID(); err == nil {
			w.SSID = ssid
		}
		if strength, err := ap.GetPropertyStrength(); err == nil {
			w.Strength = int(strength)
		}
		break
	}
	return w, nil
}

func stateLabel(state gonetworkmanager.NmState) string {
	switch state {
	case gonetworkmanager.NmStateAsleep, gonetworkmanager.NmStateDisconnected:
		return "No connection"
	case gonetworkmanager.NmStateConnecting:
		return "Connecting"
	case gonetworkmanager.NmStateDisconnecting:
		return "Disconnecting"
	case gonetworkmanager.NmStateConnectedLocal, gonetworkmanager.NmStateConnectedSite:
		return "No internet"
	case gonetworkmanager.NmStateConnectedGlobal:
		return "Connected"
	}
	return "Unknown"
}
