package util

import (
	"fmt"
	"os"
	"sync"
	"time"

	"pixsteg/cryptography"
)

/*
 * a custom logger. Lines go to a file (stderr when no file is configured),
 * optionally colored and optionally encrypted as a whole.
 */
const (
	Error   = 1
	Warning = 2
	Info    = 4

	RedColor    = "\033[31m"
	YellowColor = "\033[33m"
	CyanColor   = "\033[36m"
	ResetColor  = "\033[0m"
)

type LoggerInfo struct {
	Filename    string `yaml:"filename"`
	Password    string `yaml:"password"` // <base64-salt>:<password>, used when encrypted
	IsEncrypted bool   `yaml:"is_encrypted"`
	IsColored   bool   `yaml:"is_colored"`
	SaveTime    bool   `yaml:"save_time"`
	Mode        uint8  `yaml:"mode"`
}

// Key derives the log encryption key, nil for plaintext logs.
func (li *LoggerInfo) Key() ([]byte, error) {
	if !li.IsEncrypted {
		return nil, nil
	}
	pass, saltBytes, err := cryptography.SplitWithSalt(li.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid log password: %s", err.Error())
	}
	return cryptography.DeriveKey(pass, saltBytes), nil
}

type Logger struct {
	li  *LoggerInfo
	key []byte
	mtx sync.Mutex
}

func NewLogger(li *LoggerInfo) (*Logger, error) {
	key, err := li.Key()
	if err != nil {
		return nil, err
	}
	return &Logger{li: li, key: key}, nil
}

func (l *Logger) colorize(line string, color string) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func (l *Logger) prepareString(str string, clr string) string {
	toWrite := l.colorize(str, clr) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format(time.RFC3339) + " "
	}
	return toWrite
}

func (l *Logger) LogString(s string) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if l.li.Filename == "" {
		_, err := fmt.Fprintln(os.Stderr, s)
		return err
	}
	if l.key == nil {
		// just append line
		f, err := os.OpenFile(l.li.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = f.WriteString(s + "\n")
		return err
	}

	// re-encrypt the whole log with the new line appended
	var currentLog []byte
	data, err := os.ReadFile(l.li.Filename)
	if err == nil {
		if currentLog, err = cryptography.Decrypt(data, l.key); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	newData, err := cryptography.Encrypt(append(currentLog, []byte(s+"\n")...), l.key)
	if err != nil {
		return err
	}
	return os.WriteFile(l.li.Filename, newData, 0600)
}

func (l *Logger) LogError(err error) {
	if l.li.Mode&Error == Error {
		l.LogString(l.prepareString("[ERROR]", RedColor) + err.Error())
	}
}

func (l *Logger) LogWarning(warning string) {
	if l.li.Mode&Warning == Warning {
		l.LogString(l.prepareString("[WARNING]", YellowColor) + warning)
	}
}

func (l *Logger) LogInfo(info string) {
	if l.li.Mode&Info == Info {
		l.LogString(l.prepareString("[INFO]", CyanColor) + info)
	}
}
