package util

import (
	"sync"

	"github.com/denisbrodbeck/machineid"
)

// tokenMachineApp scopes the protected machine id to this service
const tokenMachineApp = "fast-note-history"

var (
	machineIDOnce sync.Once
	machineID     string
)

// GetMachineID returns an app-scoped hash of the host machine id.
// The value salts token signing keys so tokens do not move between hosts.
// An empty string is returned when the host exposes no machine id.
// GetMachineID 返回当前机器的标识（按应用加盐），获取失败时返回空字符串
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ProtectedID(tokenMachineApp); err == nil {
			machineID = id
		}
	})
	return machineID
}
