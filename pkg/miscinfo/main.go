package miscinfo

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

const DMIRoot = "/sys/class/dmi/id"

// SystemInfo identifies the machine under test in reports.
type SystemInfo struct {
	Host    string `json:"host" yaml:"host"`
	OS      string `json:"os" yaml:"os"`
	Kernel  string `json:"kernel" yaml:"kernel"`
	Vendor  string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Product string `json:"product,omitempty" yaml:"product,omitempty"`
	BIOS    string `json:"bios,omitempty" yaml:"bios,omitempty"`
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// GetSystem gathers host, distribution, kernel and DMI identity. Fields
// that cannot be read are left empty.
func GetSystem() SystemInfo {
	return getSystem("/etc/os-release", DMIRoot)
}

func getSystem(osRelease, dmiRoot string) SystemInfo {
	var info SystemInfo

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	info.Host = hostname
	info.OS = getLinuxDistro(osRelease)

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		info.Kernel = unix.ByteSliceToString(uts.Release[:])
	}

	info.Vendor = readFile(filepath.Join(dmiRoot, "sys_vendor"))
	info.Product = readFile(filepath.Join(dmiRoot, "product_name"))
	info.BIOS = readFile(filepath.Join(dmiRoot, "bios_version"))
	return info
}

func GetSystemJSON() ([]byte, error) {
	return json.MarshalIndent(GetSystem(), "", "  ")
}

func getLinuxDistro(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "Linux"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var prettyName string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			prettyName = strings.Trim(line[len("PRETTY_NAME="):], `"`)
		}
	}

	if prettyName == "" {
		return "Linux"
	}
	return prettyName
}
