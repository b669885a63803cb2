package filenameparser

import "regexp"

// pathSegmentFilter holds fixed mount-point/noise segment names dropped
// before candidate generation begins.
var pathSegmentFilter = map[string]bool{
	"tmp": true, "watch": true, "mnt": true, "mock-test-files": true,
	"data": true, "apps": true, "skystorage": true, "transmission-vpn": true,
}

// segmentNoiseTokens are directory-name tokens that carry no title
// information (sidecar/asset folders).
var segmentNoiseTokens = map[string]bool{
	"proof": true, "poster": true, "posters": true, "sample": true, "samples": true,
	"subs": true, "subtitle": true, "subtitles": true, "nfo": true, "info": true,
	"readme": true, "extras": true, "extra": true, "bonus": true, "screen": true,
	"screens": true, "screenshot": true, "screenshots": true, "cover": true, "covers": true,
	"completed": true, "complete": true, "downloads": true, "download": true,
	"incoming": true, "incomplete": true,
}

// extensionTokens are recognized file extensions (without the dot).
var extensionTokens = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "mov": true, "wmv": true, "flv": true,
	"ts": true, "m2ts": true, "rmkv": true, "rar": true, "zip": true, "7z": true,
	"r00": true, "r01": true, "r02": true, "sfv": true, "md5": true, "srr": true,
	"idx": true, "srt": true, "sub": true, "sup": true, "nfo": true, "txt": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "webp": true,
	"mp3": true, "flac": true, "wav": true, "ogg": true, "m4a": true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "webp": true,
}

var visualAssetTokens = map[string]bool{
	"art": true, "artwork": true, "cover": true, "covers": true, "poster": true,
	"posters": true, "proof": true, "sample": true, "samples": true, "screen": true,
	"screens": true, "screenshot": true, "screenshots": true,
}

// genericTitleTokens is the release-tag vocabulary: resolutions, codecs,
// sources, audio tags, and other junk that never belongs in a title.
var genericTitleTokens = map[string]bool{
	"the": true, "and": true, "or": true, "a": true, "an": true, "movie": true,
	"pack": true, "collection": true, "anthology": true, "phase": true, "cinematic": true,
	"universe": true, "complete": true, "edition": true, "cut": true, "version": true,
	"remastered": true, "extended": true, "imax": true, "uhd": true, "hdr": true,
	"remux": true, "web": true, "webdl": true, "webrip": true, "bluray": true,
	"bdrip": true, "hdrip": true, "brip": true, "dvdrip": true, "dvdr": true,
	"digital": true, "rip": true, "x264": true, "x265": true, "h264": true, "h265": true,
	"hevc": true, "ddp": true, "dd": true, "dts": true, "atmos": true, "ac3": true,
	"aac": true, "truehd": true, "proper": true, "repack": true, "rerip": true,
	"subs": true, "subtitles": true, "dub": true, "multi": true, "1080p": true,
	"720p": true, "2160p": true, "4k": true, "10bit": true, "hdr10": true,
	"hdr10plus": true, "dolby": true, "vision": true,
}

var lowInformationExtensions = map[string]bool{
	"rar": true, "zip": true, "7z": true, "r00": true, "r01": true, "r02": true,
	"sfv": true, "md5": true, "srr": true, "txt": true,
}

const maxFallbackSegments = 2

var tokenSplitRx = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func tokenize(text string) []string {
	parts := tokenSplitRx.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sourceNoiseTokens is the union consulted when computing a candidate's
// noise penalty.
var sourceNoiseTokens = unionTokenSets(
	genericTitleTokens, segmentNoiseTokens, extensionTokens,
	map[string]bool{"tmp": true, "watch": true, "mnt": true, "mock": true, "files": true, "file": true, "disc": true, "disk": true, "part": true},
)

func unionTokenSets(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, set := range sets {
		for k := range set {
			out[k] = true
		}
	}
	return out
}
