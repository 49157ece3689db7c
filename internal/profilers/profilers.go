// Package profilers sets up profiling for the binaries: it installs the -prof, -cpu_profile and
// -mem_profile flags when linked.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, serves the pprof HTTP profiler at the given port and keeps the program alive at the end.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write CPU profile of the whole run to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write heap profile at the end of the run to `file`.")

	profilerAddr string
	cpuFile      *os.File

	// globalCtx is set on the call to Setup.
	globalCtx context.Context
)

// Setup starts the HTTP (-prof) and CPU (-cpu_profile) profilers, if they were configured.
// It should be followed by a deferred call to OnQuit.
func Setup(ctx context.Context) {
	globalCtx = ctx
	if *flagProfiler >= 0 {
		profilerAddr = fmt.Sprintf("localhost:%d", *flagProfiler)
		fmt.Printf("Profiler on http://%s/debug/pprof\n", profilerAddr)
		fmt.Printf("- Access it with: $ go tool pprof http://%s/debug/pprof/heap\n", profilerAddr)
		go func() {
			klog.Fatal(http.ListenAndServe(profilerAddr, nil))
		}()
	}
	if *flagCPUProfile != "" {
		var err error
		cpuFile, err = os.Create(*flagCPUProfile)
		if err != nil {
			klog.Fatalf("Failed to create CPU profile %q: %+v", *flagCPUProfile, err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			klog.Fatalf("Failed to start CPU profile: %+v", err)
		}
	}
}

// OnQuit flushes the profiles. It is typically deferred right after Setup.
//
// With -prof set, it keeps the program alive until the context given to Setup is cancelled.
func OnQuit() {
	if cpuFile != nil {
		pprof.StopCPUProfile()
		_ = cpuFile.Close()
		cpuFile = nil
	}
	if *flagMemProfile != "" {
		writeHeapProfile(*flagMemProfile)
	}
	if *flagProfiler < 0 || globalCtx == nil {
		return
	}
	// Don't freeze on panic.
	if err := recover(); err != nil {
		panic(err)
	}
	if globalCtx.Err() != nil {
		return
	}
	runtime.GC()
	fmt.Printf("- Program finished: kept alive with profiler at http://%s/debug/pprof\n", profilerAddr)
	fmt.Printf("- Interrupt (Ctrl+C) to exit\n")
	<-globalCtx.Done()
}

func writeHeapProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		klog.Errorf("Failed to create heap profile %q: %+v", path, err)
		return
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err = pprof.WriteHeapProfile(f); err != nil {
		klog.Errorf("Failed to write heap profile %q: %+v", path, err)
	}
}
