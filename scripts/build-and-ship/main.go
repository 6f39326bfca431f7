package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"strings"
)

const buildPath = "./build"
const archivesPath = "./build/archives"
const executableName = "dalendar"
const moduleName = "github.com/dalendar/dalendar"

type archiveType int

const (
	archiveTypeTarGz archiveType = iota
	archiveTypeZip
)

type buildTarget struct {
	os        string
	arch      string
	armV      int
	extension string
	archive   archiveType
}

func (t buildTarget) name() string {
	if t.arch == "arm" {
		return fmt.Sprintf("%s-%s-%sv%d", executableName, t.os, t.arch, t.armV)
	}

	return fmt.Sprintf("%s-%s-%s%s", executableName, t.os, t.arch, t.extension)
}

var buildTargets = []buildTarget{
	{os: "windows", arch: "amd64", extension: ".exe", archive: archiveTypeZip},
	{os: "windows", arch: "arm64", extension: ".exe", archive: archiveTypeZip},
	{os: "darwin", arch: "arm64"},
	{os: "linux", arch: "amd64"},
	{os: "linux", arch: "arm64"},
	{os: "linux", arch: "arm", armV: 7},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("", flag.ExitOnError)
	version := flags.String("version", "", "Version to stamp into the binaries, defaults to the latest git tag")
	allowDirty := flags.Bool("allow-dirty", false, "Build even with uncommitted changes")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if !*allowDirty {
		dirty, err := hasUncommittedChanges()
		if err != nil {
			return err
		}

		if dirty {
			return errors.New("there are uncommitted changes, commit, stash or discard them first")
		}
	}

	if *version == "" {
		tag, err := versionFromGit()
		if err != nil {
			return fmt.Errorf("reading version from git: %w", err)
		}
		*version = tag
	}

	if err := os.RemoveAll(buildPath); err != nil {
		return err
	}

	if err := os.MkdirAll(archivesPath, 0o755); err != nil {
		return err
	}

	var checksums strings.Builder

	for _, target := range buildTargets {
		fmt.Printf("Building %s for %s/%s\n", *version, target.os, target.arch)

		archive, err := build(*version, target)
		if err != nil {
			return fmt.Errorf("building %s: %w", target.name(), err)
		}

		sum, err := fileChecksum(archive)
		if err != nil {
			return err
		}

		fmt.Fprintf(&checksums, "%s  %s\n", sum, path.Base(archive))
	}

	return os.WriteFile(path.Join(archivesPath, "checksums.txt"), []byte(checksums.String()), 0o644)
}

func hasUncommittedChanges() (bool, error) {
	output, err := exec.Command("git", "status", "--porcelain").CombinedOutput()
	if err != nil {
		return false, err
	}

	return len(output) > 0, nil
}

func versionFromGit() (string, error) {
	output, err := exec.Command("git", "describe", "--tags", "--abbrev=0").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, output)
	}

	return strings.TrimSpace(string(output)), nil
}

func build(version string, target buildTarget) (string, error) {
	name := target.name()
	binaryPath := path.Join(buildPath, name)

	ldflags := fmt.Sprintf("-s -w -X %s/internal/dalendar.buildVersion=%s", moduleName, version)

	cmd := exec.Command("go", "build", "-trimpath", "-ldflags", ldflags, "-o", binaryPath, ".")
	cmd.Env = append(os.Environ(), "GOOS="+target.os, "GOARCH="+target.arch, "CGO_ENABLED=0")

	if target.arch == "arm" {
		cmd.Env = append(cmd.Env, fmt.Sprintf("GOARM=%d", target.armV))
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %s", err, output)
	}

	return archiveFile(name, binaryPath, target.archive)
}

func archiveFile(name, binaryPath string, t archiveType) (string, error) {
	var cmd *exec.Cmd
	var archive string

	switch t {
	case archiveTypeZip:
		archive = path.Join(archivesPath, name+".zip")
		cmd = exec.Command("zip", "-j", archive, binaryPath)
	default:
		archive = path.Join(archivesPath, name+".tar.gz")
		cmd = exec.Command("tar", "-C", buildPath, "-czf", archive, name)
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("archiving: %w: %s", err, output)
	}

	return archive, nil
}

func fileChecksum(name string) (string, error) {
	file, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
