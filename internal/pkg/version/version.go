// Package version 빌드 시점에 주입된 메타데이터와 실행 환경 정보를 제공합니다.
//
// 버전 정보는 -ldflags로 주입합니다:
//
//	go build -ldflags "-X github.com/darkkaiser/contenthub-server/internal/pkg/version.appVersion=v1.0.0"
//
// 주입되지 않은 값은 debug.ReadBuildInfo의 VCS 메타데이터로 보강됩니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const (
	unknown = "unknown"
	none    = "none"
)

var globalBuildInfo atomic.Value

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 선언합니다.
var readBuildInfo = debug.ReadBuildInfo

// 링커 플래그(-ldflags -X)로 주입되는 값입니다. 직접 참조하지 말고 Get()을 사용하세요.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean 또는 dirty
	buildDate     = ""
	buildNumber   = ""
)

func init() {
	bi := Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}

	Set(enrichBuildInfo(bi))
}

// Info 애플리케이션의 빌드 정보입니다.
type Info struct {
	Version     string `json:"version"`      // 애플리케이션 버전 (예: v1.0.1-155-gf25b8bf)
	Commit      string `json:"commit"`       // Git 커밋 해시
	BuildDate   string `json:"build_date"`   // 빌드 날짜 (RFC3339 권장)
	BuildNumber string `json:"build_number"` // CI/CD 빌드 번호
	GoVersion   string `json:"go_version"`   // Go 컴파일러 버전
	OS          string `json:"os"`           // 운영체제
	Arch        string `json:"arch"`         // 아키텍처
	DirtyBuild  bool   `json:"dirty_build"`  // 커밋되지 않은 변경사항이 포함된 빌드인지 여부
}

// Get 현재 등록된 빌드 정보를 반환합니다.
func Get() Info {
	bi, ok := globalBuildInfo.Load().(Info)
	if !ok {
		return Info{
			Version:     unknown,
			Commit:      unknown,
			BuildDate:   unknown,
			BuildNumber: "0",
		}
	}
	return bi
}

// Set 빌드 정보를 전역으로 등록합니다.
func Set(bi Info) {
	globalBuildInfo.Store(bi)
}

// enrichBuildInfo 비어있는 필드를 런타임 정보와 VCS 메타데이터로 채웁니다.
func enrichBuildInfo(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" || bi.Commit == unknown || bi.Commit == none {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" || bi.BuildDate == unknown {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" || bi.Commit == none {
		bi.Commit = unknown
	}

	return bi
}

// ToMap 구조적 로깅을 위해 빌드 정보를 맵으로 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 빌드 정보를 한 줄로 요약합니다.
// 예: "v1.0.0 (commit: f25b8bf, build: 42, go_version: go1.24.0, os: linux, arch: amd64)"
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}

	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if i.BuildDate != "" && i.BuildDate != unknown {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, "go_version: "+i.GoVersion)
	}
	if i.OS != "" {
		details = append(details, "os: "+i.OS)
	}
	if i.Arch != "" {
		details = append(details, "arch: "+i.Arch)
	}

	if len(details) == 0 {
		return v
	}

	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
