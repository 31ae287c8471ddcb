// Package commands provides the high-level operations behind the pkgdb CLI.
//
// Each command opens a database session, does its work and closes the
// session again:
//   - install/ - InstallPackages command
//   - remove/  - RemovePackages command
//   - owner/   - QueryOwners command
//   - list/    - ListPackages command
//   - files/   - PackageFiles command
//   - check/   - CheckPackages command
//   - internal/ - Shared session handling
//
// This file re-exports the command functions so callers only need one import.
package commands

import (
	"github.com/arthur-debert/pkgdb/pkg/commands/check"
	"github.com/arthur-debert/pkgdb/pkg/commands/files"
	"github.com/arthur-debert/pkgdb/pkg/commands/install"
	"github.com/arthur-debert/pkgdb/pkg/commands/list"
	"github.com/arthur-debert/pkgdb/pkg/commands/owner"
	"github.com/arthur-debert/pkgdb/pkg/commands/remove"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// InstallPackages installs package archives in order.
type InstallPackagesOptions = install.InstallPackagesOptions

func InstallPackages(opts InstallPackagesOptions) (*types.InstallResult, error) {
	return install.InstallPackages(opts)
}

// RemovePackages removes installed packages and their manifests.
type RemovePackagesOptions = remove.RemovePackagesOptions

func RemovePackages(opts RemovePackagesOptions) (*types.RemoveResult, error) {
	return remove.RemovePackages(opts)
}

// QueryOwners finds the packages owning paths.
type QueryOwnersOptions = owner.QueryOwnersOptions

func QueryOwners(opts QueryOwnersOptions) (*types.OwnerResult, error) {
	return owner.QueryOwners(opts)
}

// ListPackages lists installed packages.
type ListPackagesOptions = list.ListPackagesOptions

func ListPackages(opts ListPackagesOptions) (*types.ListResult, error) {
	return list.ListPackages(opts)
}

// PackageFiles lists the files of one package.
type PackageFilesOptions = files.PackageFilesOptions

func PackageFiles(opts PackageFilesOptions) (*types.FilesResult, error) {
	return files.PackageFiles(opts)
}

// CheckPackages reports recorded files missing on disk.
type CheckPackagesOptions = check.CheckPackagesOptions

func CheckPackages(opts CheckPackagesOptions) (*types.CheckResult, error) {
	return check.CheckPackages(opts)
}
