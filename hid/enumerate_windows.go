// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hid

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modhid      = windows.NewLazySystemDLL("hid.dll")
	modcfgmgr32 = windows.NewLazySystemDLL("cfgmgr32.dll")

	procHidDGetHidGuid            = modhid.NewProc("HidD_GetHidGuid")
	procHidDGetAttributes         = modhid.NewProc("HidD_GetAttributes")
	procHidDGetSerialNumberString = modhid.NewProc("HidD_GetSerialNumberString")
	procHidDGetPreparsedData      = modhid.NewProc("HidD_GetPreparsedData")
	procHidDFreePreparsedData     = modhid.NewProc("HidD_FreePreparsedData")
	procHidPGetCaps               = modhid.NewProc("HidP_GetCaps")

	procCMGetDeviceInterfaceListSize = modcfgmgr32.NewProc("CM_Get_Device_Interface_List_SizeW")
	procCMGetDeviceInterfaceList     = modcfgmgr32.NewProc("CM_Get_Device_Interface_ListW")
)

const (
	crSuccess                       = 0x0
	cmGetDeviceInterfaceListPresent = 0x1

	hidpStatusSuccess = 0x00110000
)

// hiddAttributes is HIDD_ATTRIBUTES.
type hiddAttributes struct {
	Size          uint32
	VendorID      uint16
	ProductID     uint16
	VersionNumber uint16
}

// hidpCaps is HIDP_CAPS.
type hidpCaps struct {
	Usage                     uint16
	UsagePage                 uint16
	InputReportByteLength     uint16
	OutputReportByteLength    uint16
	FeatureReportByteLength   uint16
	Reserved                  [17]uint16
	NumberLinkCollectionNodes uint16
	NumberInputButtonCaps     uint16
	NumberInputValueCaps      uint16
	NumberInputDataIndices    uint16
	NumberOutputButtonCaps    uint16
	NumberOutputValueCaps     uint16
	NumberOutputDataIndices   uint16
	NumberFeatureButtonCaps   uint16
	NumberFeatureValueCaps    uint16
	NumberFeatureDataIndices  uint16
}

// DeviceInfo describes one present HID device interface.
type DeviceInfo struct {
	Path    string
	Serial  string
	Vendor  uint16
	Product uint16
	Caps    Caps
}

// Devices returns descriptions of all present HID device interfaces.
// Interfaces whose metadata cannot be read are skipped.
func Devices() ([]DeviceInfo, error) {
	paths, err := interfaceList()
	if err != nil {
		return nil, err
	}
	var infos []DeviceInfo
	for _, path := range paths {
		info, err := Describe(path)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Describe opens the device interface at path without read or write
// access and queries its identity and report capabilities.
func Describe(path string) (DeviceInfo, error) {
	h, err := open(path, 0)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("hid: failed to open %s for query: %w", path, err)
	}
	defer windows.CloseHandle(h)

	attr := hiddAttributes{Size: uint32(unsafe.Sizeof(hiddAttributes{}))}
	if ok, _, _ := procHidDGetAttributes.Call(uintptr(h), uintptr(unsafe.Pointer(&attr))); ok == 0 {
		return DeviceInfo{}, fmt.Errorf("hid: failed to get attributes of %s", path)
	}

	var serial [64]uint16
	if ok, _, _ := procHidDGetSerialNumberString.Call(uintptr(h), uintptr(unsafe.Pointer(&serial[0])), unsafe.Sizeof(serial)); ok == 0 {
		return DeviceInfo{}, fmt.Errorf("hid: failed to get serial number of %s", path)
	}

	var preparsed uintptr
	if ok, _, _ := procHidDGetPreparsedData.Call(uintptr(h), uintptr(unsafe.Pointer(&preparsed))); ok == 0 {
		return DeviceInfo{}, fmt.Errorf("hid: failed to get preparsed data of %s", path)
	}
	defer procHidDFreePreparsedData.Call(preparsed)

	var caps hidpCaps
	if status, _, _ := procHidPGetCaps.Call(preparsed, uintptr(unsafe.Pointer(&caps))); status != hidpStatusSuccess {
		return DeviceInfo{}, fmt.Errorf("hid: failed to get capabilities of %s: NTSTATUS %#x", path, status)
	}

	return DeviceInfo{
		Path:    path,
		Serial:  windows.UTF16ToString(serial[:]),
		Vendor:  attr.VendorID,
		Product: attr.ProductID,
		Caps: Caps{
			InputReportLength:  int(caps.InputReportByteLength),
			OutputReportLength: int(caps.OutputReportByteLength),
		},
	}, nil
}

// interfaceList returns the device paths of all present HID class
// interfaces.
func interfaceList() ([]string, error) {
	var guid windows.GUID
	procHidDGetHidGuid.Call(uintptr(unsafe.Pointer(&guid)))

	var length uint32
	ret, _, _ := procCMGetDeviceInterfaceListSize.Call(
		uintptr(unsafe.Pointer(&length)),
		uintptr(unsafe.Pointer(&guid)),
		0, cmGetDeviceInterfaceListPresent)
	if ret != crSuccess {
		return nil, fmt.Errorf("hid: failed to get device list size: CONFIGRET %#x", ret)
	}
	if length == 0 {
		return nil, nil
	}

	list := make([]uint16, length)
	ret, _, _ = procCMGetDeviceInterfaceList.Call(
		uintptr(unsafe.Pointer(&guid)),
		0,
		uintptr(unsafe.Pointer(&list[0])),
		uintptr(length),
		cmGetDeviceInterfaceListPresent)
	if ret != crSuccess {
		return nil, fmt.Errorf("hid: failed to get device list: CONFIGRET %#x", ret)
	}

	// The list is a sequence of NUL-terminated strings with a final
	// empty string.
	var paths []string
	for start := 0; start < len(list) && list[start] != 0; {
		end := start
		for end < len(list) && list[end] != 0 {
			end++
		}
		paths = append(paths, windows.UTF16ToString(list[start:end]))
		start = end + 1
	}
	return paths, nil
}
