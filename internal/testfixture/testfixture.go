// Package testfixture holds the namespace tree the package tests share.
package testfixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattsolo1/grove-shellnav/pkg/host/fixture"
)

// Well-known references used by the standard tree.
const (
	DesktopRef   = "::{00021400-0000-0000-C000-000000000046}"
	ThisPCRef    = "::{20D04FE0-3AEA-1069-A2D8-08002B30309D}"
	DocumentsRef = "::{D3162B92-9365-467A-956B-92703ACA08AF}"
	LibrariesRef = "::{031E4825-7B94-4DC3-B131-E946B44C8DD5}"
	NetworkRef   = "::{F02C1A0D-BE21-4350-88B0-7367FC96EF3C}"
	RecycleRef   = "::{645FF040-5081-101B-9F08-00AA002F954E}"
)

// Standard is a small Windows-like namespace: Desktop with This PC, Libraries,
// Network and Recycle Bin, the user profile, and a few desktop items. Some
// folders appear twice, once under This PC and once directly under Desktop.
const Standard = `
desktop:
  name: Desktop
  special: "` + DesktopRef + `"
  path: 'C:\Users\Me\Desktop'
  flags: [directory]
  children:
    - name: This PC
      special: "` + ThisPCRef + `"
      children:
        - name: Documents
          special: "` + DocumentsRef + `"
          path: 'C:\Users\Me\Documents'
          flags: [directory]
          children:
            - name: Reports
              path: 'C:\Users\Me\Documents\Reports'
              flags: [folder, directory]
              children:
                - name: Q1
                  path: 'C:\Users\Me\Documents\Reports\Q1'
                  flags: [folder, directory]
            - name: budget.xlsx
              path: 'C:\Users\Me\Documents\budget.xlsx'
        - name: 'C:'
          label: 'Local Disk (C:)'
          parse_name: 'C:\'
          path: 'C:\'
          flags: [folder, directory, drive]
          children:
            - name: Users
              path: 'C:\Users'
              flags: [folder, directory]
              children:
                - name: Me
                  path: 'C:\Users\Me'
                  flags: [folder, directory]
                  children:
                    - name: Desktop
                      path: 'C:\Users\Me\Desktop'
                      flags: [folder, directory]
                      children:
                        - name: Projects
                          path: 'C:\Users\Me\Desktop\Projects'
                          flags: [folder, directory]
                          children:
                            - name: shellnav
                              path: 'C:\Users\Me\Desktop\Projects\shellnav'
                              flags: [folder, directory]
                    - name: Documents
                      path: 'C:\Users\Me\Documents'
                      flags: [folder, directory]
                    - name: Music
                      path: 'C:\Users\Me\Music'
                      flags: [folder, directory]
            - name: Windows
              path: 'C:\Windows'
              flags: [folder, directory]
        - name: 'D:'
          label: 'Data (D:)'
          parse_name: 'D:\'
          path: 'D:\'
          flags: [folder, directory, drive]
          children:
            - name: Data
              path: 'D:\Data'
              flags: [folder, directory]
              children:
                - name: P
                  path: 'D:\Data\P'
                  flags: [folder, directory]
    - name: Libraries
      special: "` + LibrariesRef + `"
      children:
        - name: Music
          label: Music
          path: 'C:\Users\Me\Music'
          flags: [folder, directory]
    - name: Network
      special: "` + NetworkRef + `"
      flags: [network]
      children:
        - name: server
          parse_name: '\\server'
          flags: [folder, network]
          children:
            - name: share
              path: '\\server\share'
              flags: [folder, directory, network]
    - name: Recycle Bin
      special: "` + RecycleRef + `"
      flags: [folder]
    - name: Me
      label: Me
      path: 'C:\Users\Me'
      flags: [folder, directory]
    - name: Projects
      path: 'C:\Users\Me\Desktop\Projects'
      flags: [folder, directory]
      children:
        - name: shellnav
          path: 'C:\Users\Me\Desktop\Projects\shellnav'
          flags: [folder, directory]
    - name: notes.zip
      path: 'C:\Users\Me\Desktop\notes.zip'
      flags: [folder, container]
`

// Load parses the standard tree.
func Load(t testing.TB) *fixture.Fixture {
	t.Helper()
	f, err := fixture.Parse([]byte(Standard))
	if err != nil {
		t.Fatalf("parse standard fixture: %v", err)
	}
	return f
}

// WriteFile writes the standard tree into dir and returns its path.
func WriteFile(t testing.TB, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "namespace.yaml")
	if err := os.WriteFile(path, []byte(Standard), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
