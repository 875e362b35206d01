package pathfinder

import "sort"

// TypeGroups maps a file type name to the extensions it covers.
// Used by the type:<group> filter and by the extension bonus in Score.
var TypeGroups = map[string][]string{
	"image":    {".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp", ".heic", ".svg"},
	"video":    {".mp4", ".mkv", ".mov", ".avi", ".webm", ".wmv", ".m4v"},
	"audio":    {".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"},
	"doc":      {".pdf", ".doc", ".docx", ".rtf", ".txt", ".md", ".rst"},
	"code":     {".py", ".js", ".ts", ".tsx", ".jsx", ".java", ".c", ".cpp", ".cs", ".go", ".rb", ".rs", ".php", ".sh", ".ps1"},
	"archive":  {".zip", ".tar", ".gz", ".tgz", ".bz2", ".7z", ".rar"},
	"data":     {".csv", ".tsv", ".json", ".jsonl", ".ndjson", ".parquet", ".feather", ".arrow", ".orc", ".h5", ".hdf5", ".db", ".sqlite", ".sqlite3", ".db3", ".dta", ".sav"},
	"sheet":    {".xlsx", ".xls", ".ods", ".csv", ".tsv"},
	"notebook": {".ipynb"},
	"pdf":      {".pdf"},
}

// TypeAliases maps everyday words to the type group they imply, so a
// search for "pfp" favors images.
var TypeAliases = map[string]string{
	"pfp":         "image",
	"avatar":      "image",
	"photo":       "image",
	"picture":     "image",
	"screenshot":  "image",
	"selfie":      "image",
	"wallpaper":   "image",
	"clip":        "video",
	"movie":       "video",
	"recording":   "video",
	"song":        "audio",
	"track":       "audio",
	"podcast":     "audio",
	"resume":      "doc",
	"cv":          "doc",
	"invoice":     "pdf",
	"receipt":     "pdf",
	"spreadsheet": "sheet",
	"backup":      "archive",
}

// TypeGroupNames returns the known type group names in sorted order.
func TypeGroupNames() []string {
	names := make([]string, 0, len(TypeGroups))
	for name := range TypeGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InTypeGroup reports whether ext (folded, leading dot) belongs to group.
func InTypeGroup(group, ext string) bool {
	for _, e := range TypeGroups[group] {
		if e == ext {
			return true
		}
	}
	return false
}
