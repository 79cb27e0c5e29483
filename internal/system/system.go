package system

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// WorkerCount ограничивает число воркеров количеством задач.
// Нулевое или отрицательное значение запроса трактуется как один воркер.
func WorkerCount(requested, jobs int) int {
	if requested < 1 {
		requested = 1
	}
	if jobs > 0 && requested > jobs {
		return jobs
	}
	return requested
}

// MemoryStats — снимок использования памяти процессом и системой.
type MemoryStats struct {
	ProcessRSS  uint64
	SystemUsed  uint64
	SystemTotal uint64
}

// ReadMemoryStats опрашивает ОС через gopsutil.
func ReadMemoryStats() (MemoryStats, error) {
	var stats MemoryStats

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("не удалось получить статистику памяти: %w", err)
	}
	stats.SystemUsed = vm.Used
	stats.SystemTotal = vm.Total

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("не удалось открыть текущий процесс: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("не удалось получить память процесса: %w", err)
	}
	stats.ProcessRSS = info.RSS

	return stats, nil
}

func (s MemoryStats) String() string {
	return fmt.Sprintf("RSS: %s | System: %s / %s",
		FormatBytes(s.ProcessRSS), FormatBytes(s.SystemUsed), FormatBytes(s.SystemTotal))
}

// FormatBytes возвращает человекочитаемый размер (КиБ/МиБ/ГиБ).
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
