package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/trhaseeb/geo-report/internal/api"
	"github.com/trhaseeb/geo-report/internal/dispatcher"
)

// runCLI executes one subcommand and returns a process exit code. All
// commands go through the dispatcher so the CLI exercises the same path
// a host UI would.
func runCLI(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "version":
		fmt.Printf("geo-report %s (built %s)\n", CurrentVersion, BuildDate)
	case "export":
		err = cmdExport(args[1:])
	case "import":
		err = cmdImport(args[1:])
	case "list":
		err = cmdList()
	case "demo":
		err = cmdDemo()
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		printUsage()
		return 1
	}

	if err != nil {
		Logger.Error("Command failed", "command", args[0], "error", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println("Usage: geo-report <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export [ref]   export the session (importing ref first when given)")
	fmt.Println("  import <ref>   load a stored project and print its summary")
	fmt.Println("  list           list stored projects")
	fmt.Println("  demo           run a scripted rotation session")
	fmt.Println("  version        print version and build date")
}

func dispatchEvent(command string, args ...string) (any, error) {
	return eventDispatcher.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Source:    "cli",
		Timestamp: time.Now(),
	})
}

// cmdExport saves the current session through the storage backend. When a
// ref is given the stored project is imported first, so export doubles as
// a re-export (normalize, recompress, upload) of an existing file.
func cmdExport(args []string) error {
	if len(args) > 0 {
		if _, err := dispatchEvent(":PROJECT:IMPORT:", args[0]); err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
	}

	result, err := dispatchEvent(":PROJECT:EXPORT:")
	if err != nil {
		return err
	}
	fmt.Println("Exported:", result)

	path, isPath := result.(string)
	if isPath && viper.GetString("api.apiKey") != "" {
		doc := projectContext.Get()
		err = apiClient.Upload(path, api.UploadMetadata{
			Title:    doc.Title,
			Author:   doc.Author,
			Basemap:  doc.Basemap,
			Rotation: doc.Rotation,
		})
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
		Logger.Info("Uploaded project to report server", "title", doc.Title)
		fmt.Println("Uploaded to", viper.GetString("api.serverUrl"))
	}
	return nil
}

func cmdImport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("import requires a project reference")
	}

	if _, err := dispatchEvent(":PROJECT:IMPORT:", args[0]); err != nil {
		return err
	}

	doc := projectContext.Get()
	fmt.Printf("Imported %q by %q\n", doc.Title, doc.Author)
	fmt.Printf("  basemap:  %s\n", doc.Basemap)
	fmt.Printf("  rotation: %d\n", coordinator.Value())
	fmt.Printf("  features: %d\n", len(doc.Features))
	return nil
}

func cmdList() error {
	refs, err := storageBackend.List()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		fmt.Println("No stored projects.")
		return nil
	}
	for _, ref := range refs {
		fmt.Println(ref)
	}
	return nil
}

// cmdDemo drives a scripted session: new project, a few features, a
// rotation sweep, then a full export/reset/import round trip.
func cmdDemo() error {
	Logger.Info("Starting demo session")

	if _, err := dispatchEvent(":PROJECT:NEW:", `{"title":"Demo survey","author":"geo-report","basemap":"osm"}`); err != nil {
		return err
	}

	demoFeatures := []string{
		`{"id":"hq","kind":"point","label":"HQ","icon":"flag","coords":[[13.4050,52.5200]]}`,
		`{"id":"obs-1","kind":"point","label":"Observation 1","icon":"pin","coords":[[13.4094,52.5215]]}`,
		`{"id":"route-1","kind":"line","label":"Survey route","coords":[[13.4050,52.5200],[13.4094,52.5215],[13.4120,52.5189]]}`,
	}
	for _, f := range demoFeatures {
		if _, err := dispatchEvent(":FEATURE:ADD:", f); err != nil {
			return err
		}
	}

	// 360 wraps back to 0
	for _, deg := range []string{"30", "120", "270", "360"} {
		result, err := dispatchEvent(":ROTATION:SET:", deg)
		if err != nil {
			return err
		}
		Logger.Info("Rotation applied", "requested", deg, "display", result)
	}

	// a bearing reported by the map surface itself
	if _, err := dispatchEvent(":MAP:ROTATE:", "45.4"); err != nil {
		return err
	}
	Logger.Info("Map-driven rotation applied", "value", coordinator.Value())

	exported, err := dispatchEvent(":ROTATION:SET:", "30")
	if err != nil {
		return err
	}
	Logger.Info("Rotation set for export", "display", exported)

	ref, err := dispatchEvent(":PROJECT:EXPORT:")
	if err != nil {
		return err
	}
	Logger.Info("Demo project exported", "ref", ref)

	if _, err := dispatchEvent(":PROJECT:RESET:"); err != nil {
		return err
	}
	Logger.Info("Session reset", "rotation", coordinator.Value())

	if _, err := dispatchEvent(":PROJECT:IMPORT:", fmt.Sprint(ref)); err != nil {
		return err
	}
	doc := projectContext.Get()
	Logger.Info("Demo project re-imported",
		"title", doc.Title,
		"rotation", coordinator.Value(),
		"input", rotationInput.Value(),
		"readout", rotationReadout.Value(),
		"features", len(doc.Features))

	fmt.Printf("Demo complete: %q restored at %d degrees with %d features (%s)\n",
		doc.Title, coordinator.Value(), len(doc.Features), fmt.Sprint(ref))
	return nil
}
