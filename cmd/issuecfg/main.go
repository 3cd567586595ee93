package main

import (
        "flag"
        "os"
        "strings"

        "issuecfg/internal/cli"
        "issuecfg/internal/model"

        "github.com/golang/glog"
)

// Persistent flags that take a value in the next argument.
var valueFlags = map[string]bool{
        "--dir":              true,
        "--workspace":        true,
        "--org":              true,
        "--format":           true,
        "--v":                true,
        "-v":                 true,
        "--vmodule":          true,
        "--log_dir":          true,
        "--stderrthreshold":  true,
        "--log_backtrace_at": true,
}

func isSchemeID(s string) bool {
        return strings.HasPrefix(s, "sch-") && len(s) > len("sch-")
}

// firstPositional returns the index of the first non-flag argument, or -1.
func firstPositional(argv []string) int {
        for i := 1; i < len(argv); i++ {
                a := strings.TrimSpace(argv[i])
                switch {
                case a == "":
                        continue
                case a == "--":
                        if i+1 < len(argv) {
                                return i + 1
                        }
                        return -1
                case strings.HasPrefix(a, "-"):
                        if !strings.Contains(a, "=") && valueFlags[a] {
                                i++
                        }
                        continue
                }
                return i
        }
        return -1
}

// rewriteShortcutArgs expands `issuecfg sch-1` to `issuecfg schemes show sch-1`
// and `issuecfg statuses` to `issuecfg lists show statuses`.
func rewriteShortcutArgs(argv []string) []string {
        i := firstPositional(argv)
        if i < 0 {
                return argv
        }
        var prefix []string
        a := strings.TrimSpace(argv[i])
        if isSchemeID(a) {
                prefix = []string{"schemes", "show"}
        } else if _, ok := model.ParseListKind(a); ok && len(argv) == i+1 {
                prefix = []string{"lists", "show"}
        } else {
                return argv
        }
        out := make([]string, 0, len(argv)+len(prefix))
        out = append(out, argv[:i]...)
        out = append(out, prefix...)
        return append(out, argv[i:]...)
}

func main() {
        // Log to stderr unless the operator points glog elsewhere.
        _ = flag.Set("logtostderr", "true")
        os.Args = rewriteShortcutArgs(os.Args)

        err := cli.NewRootCmd().Execute()
        glog.Flush()
        if err != nil {
                os.Exit(1)
        }
}
