package service

import (
	"time"
)

// now 返回写入时间戳；测试中可替换
var now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
