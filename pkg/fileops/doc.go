// Package fileops provides the filesystem plumbing shared by the project
// explorer, the script writer and the scene analyzer.
//
// # Scanning
//
// SecureDirectoryScanner walks a directory tree through an os.Root, so no
// entry outside the scan root can be opened, and symbolic links are never
// followed. Walk reports one DirectoryVisit per directory; ScanDirectory
// flattens the walk into a file list. Both produce entries sorted by name so
// results are deterministic across filesystems.
//
//	scanner, err := fileops.NewDirectoryScanner(root, &fileops.DirectoryScanOptions{
//	    IncludeHidden: false,
//	    SkipPatterns:  []string{"__pycache__"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer scanner.Close()
//	err = scanner.Walk(func(v fileops.DirectoryVisit) error {
//	    fmt.Println(v.Path, v.Directories, v.Files)
//	    return nil
//	})
//
// # Writing
//
// AtomicWriteFile replaces a file through a temporary sibling and a rename;
// EnsureDirectoryExists is `mkdir -p` with 0755 permissions.
//
// # Containment
//
// ResolveWithin and ValidateWithinDirectory reject user-supplied relative
// paths that would escape a base directory through ".." components.
package fileops
