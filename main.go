package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pixsteg/config"
	"pixsteg/cryptography"
	"pixsteg/util"
)

const (
	PixstegFolder  = ".pixsteg"
	HomeVariable   = "PIXSTEG_HOME"
	ConfigFilename = "config.yaml"
	SaltFilename   = "salt.bin"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}
	command := os.Args[1]

	// the only command which needs neither configuration nor password
	if command == "gensalt" {
		salt, err := util.GenSalt()
		if err != nil {
			fatal("Failed to generate salt:", err)
		}
		fmt.Println("[+] Generated salt:", salt)
		return
	}

	f := newFlags(command)
	if f == nil {
		help()
		os.Exit(2)
	}
	f.set.Parse(os.Args[2:])
	util.DebugMode = f.debug

	folder, err := pixstegFolder()
	if err != nil {
		fatal("Failed to prepare pixsteg directory:", err)
	}

	var key []byte
	if f.encrypted {
		saltBytes, err := getSalt(folder)
		if err != nil {
			fatal("Failed to get salt bytes:", err)
		}
		password, err := util.GetPasswd("Password: ")
		if err != nil {
			fatal("Failed to read password from stdin:", err)
		}
		key = cryptography.DeriveKey(password, saltBytes)
	}

	configFile := filepath.Join(folder, ConfigFilename)
	// if the application runs for the first time, write the defaults
	if _, err := os.Stat(configFile); err != nil {
		if err = config.SaveConfig(configFile, key, config.DefaultConfig(folder)); err != nil {
			fatal("Failed to save default configuration:", err)
		}
	}
	conf, err := config.LoadConfig(configFile, key)
	if err != nil {
		fatal("Failed to load configuration (invalid password?):", err)
	}

	a, err := newApp(conf)
	if err != nil {
		fatal("Failed to start:", err)
	}
	defer a.Close()

	if err = a.run(command, f); err != nil {
		a.logger.LogError(err)
		a.Close()
		fatal(err)
	}
}

func pixstegFolder() (string, error) {
	folder := os.Getenv(HomeVariable)
	if folder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		folder = filepath.Join(home, PixstegFolder)
	}
	if err := os.MkdirAll(folder, 0700); err != nil {
		return "", err
	}
	return folder, nil
}

func getSalt(folder string) ([]byte, error) {
	saltFile := filepath.Join(folder, SaltFilename)
	salt, err := os.ReadFile(saltFile)
	if err != nil {
		salt, err = cryptography.GenRandom(cryptography.SaltSize)
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(saltFile, salt, 0600); err != nil {
			return nil, err
		}
	}
	return salt, nil
}

type flags struct {
	set       *flag.FlagSet
	encrypted bool
	debug     bool

	input   string
	output  string
	message string
	format  string
	folder  string
}

func newFlags(command string) *flags {
	f := &flags{set: flag.NewFlagSet(command, flag.ExitOnError)}
	f.set.BoolVar(&f.encrypted, "encrypted", false, "configuration is encrypted with a password")
	f.set.BoolVar(&f.debug, "debug", false, "print debug output")

	switch command {
	case "hide":
		f.set.StringVar(&f.input, "i", "", "decoy image (random file from the decoy folder when empty)")
		f.set.StringVar(&f.output, "o", "", "output image")
		f.set.StringVar(&f.message, "m", "", "message to hide (stdin when empty)")
		f.set.StringVar(&f.format, "f", "", "output format: auto, png, bmp or jpeg")
	case "reveal", "check":
		f.set.StringVar(&f.input, "i", "", "image to read")
	case "capacity":
		f.set.StringVar(&f.input, "i", "", "decoy image")
		f.set.StringVar(&f.format, "f", "", "output format: auto, png, bmp or jpeg")
	case "scan":
		f.set.StringVar(&f.folder, "d", "", "folder to scan (decoy folder when empty)")
	case "readlog":
	default:
		return nil
	}
	return f
}

func fatal(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func help() {
	line := `Usage: ./pixsteg <command> [arguments]

The following commands are supported:
	hide		hide a message in an image
	reveal		print the message hidden in an image
	check		tell whether an image carries a message
	capacity	print how many bytes an image can carry
	scan		check every image in a folder
	readlog		read log file
	gensalt		generate base64-encoded salt for password

Common arguments:
	-encrypted	configuration and salt are protected with a password
	-debug		print debug output
`
	fmt.Printf("%s", line)
}
