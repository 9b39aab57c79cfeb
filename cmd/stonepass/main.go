// Command stonepass is the interactive front end for the StonePass
// password composer: it prompts for a username, master passphrase, site,
// version, and length, derives the site-specific password, displays it,
// and waits for Enter before clearing the screen. It reads a whole input
// line there; other keys alone do not dismiss the display.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/stonepass/stonepass/config"
	"github.com/stonepass/stonepass/internal/ui"
	"github.com/stonepass/stonepass/password"
)

const minCLILength = 8
const maxCLILength = 64

func main() {
	defaultConfigFile := "~/.stonepass.toml"
	if runtime.GOOS == "windows" {
		defaultConfigFile = "~/stonepass.toml"
	}
	configFile := flag.String("config", defaultConfigFile, "optional TOML file overriding character-set policy")
	flag.Parse()

	go handleSignals()

	policy, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	in := bufio.NewReader(os.Stdin)
	stdinFd := int(os.Stdin.Fd())

	fmt.Print("Username / Email   : ")
	username, err := ui.ReadLine(in)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print("Master Password    : ")
	masterPassword, err := ui.ReadPassword(stdinFd, in)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	registerSensitive(masterPassword)
	defer func() {
		for i := range masterPassword {
			masterPassword[i] = 0
		}
		unregisterSensitive(masterPassword)
	}()

	fmt.Print("Site / Domain      : ")
	site, err := ui.ReadLine(in)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print("Version (counter)  : ")
	versionStr, err := ui.ReadLine(in)
	if err != nil {
		log.Fatal(err)
	}
	version := 1
	if versionStr != "" {
		version, err = strconv.Atoi(versionStr)
		if err != nil {
			log.Fatalf("invalid version: %v", err)
		}
	}

	fmt.Printf("Length (%d-%d)      : ", minCLILength, maxCLILength)
	lengthStr, err := ui.ReadLine(in)
	if err != nil {
		log.Fatal(err)
	}
	length := 20
	if lengthStr != "" {
		length, err = strconv.Atoi(lengthStr)
		if err != nil {
			log.Fatalf("invalid length: %v", err)
		}
	}
	if length < minCLILength || length > maxCLILength {
		log.Fatalf("length must be between %d and %d", minCLILength, maxCLILength)
	}

	opts := password.Options{
		Username:       username,
		MasterPassword: string(masterPassword),
		Site:           site,
		Version:        version,
		Length:         length,
		Policy:         policy,
	}

	fmt.Println("Deriving password, please wait...")
	generated, err := password.Generate(opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nUsername : %s\n", username)
	fmt.Printf("Site     : %s\n", site)
	fmt.Printf("Version  : %d\n", version)
	fmt.Printf("Password : %s\n", generated)
	fmt.Print("\nPress Enter to clear the screen and exit...")
	_, _ = in.ReadString('\n')

	clearScreen()
}
