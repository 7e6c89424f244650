package cliutil

import (
	"fmt"
	"runtime"
)

type BuildInfo struct {
	GoOS        string `json:"go_os"`
	GoVersion   string `json:"go_version"`
	GoArch      string `json:"go_arch"`
	BuildType   string `json:"build_type"`
	DDNSVersion string `json:"ddns_version"`
}

func GetBuildInfo(buildType, version string) *BuildInfo {
	return &BuildInfo{
		GoOS:        runtime.GOOS,
		GoVersion:   runtime.Version(),
		GoArch:      runtime.GOARCH,
		BuildType:   buildType,
		DDNSVersion: version,
	}
}

func (bi *BuildInfo) Log() string {
	return fmt.Sprintf("Version %s (%s %s/%s)%s", bi.DDNSVersion, bi.GoVersion, bi.GoOS, bi.GoArch, bi.GetBuildTypeMsg())
}

func (bi *BuildInfo) GetBuildTypeMsg() string {
	if bi.BuildType == "" {
		return ""
	}
	return fmt.Sprintf(" with %s", bi.BuildType)
}
