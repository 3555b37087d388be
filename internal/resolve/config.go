// Package resolve turns raw instruction occurrences exported from a
// disassembler into normalized records with human-readable function labels.
// Labels for anonymous symbols are recovered heuristically by searching a
// decompiled source listing for the matching RVA comment.
package resolve

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config carries the constants that were hardcoded in the original tooling:
// which export lines to keep, how addresses are rebased, how anonymous
// symbols are named, and which resolved labels are known noise.
type Config struct {
	// SectionMarker keeps only export lines from the designated code section.
	SectionMarker string `json:"sectionMarker" jsonschema:"title=Section Marker,description=Substring identifying lines from the code section of interest"`

	// Mnemonics keeps only instructions whose text contains one of these
	// prefixes. Matched case-sensitively, trailing space included.
	Mnemonics []string `json:"mnemonics" jsonschema:"title=Mnemonics,description=Instruction mnemonic prefixes to keep (trailing space included)"`

	// Blacklist drops resolved records whose label contains any entry.
	Blacklist []string `json:"blacklist" jsonschema:"title=Blacklist,description=Label substrings identifying noise records to drop"`

	// BaseMarker splits raw address tokens; everything after its first
	// occurrence is the rebased offset.
	BaseMarker string `json:"baseMarker" jsonschema:"title=Base Marker,description=Literal substring marking the image base in raw address tokens"`

	// AnonymousPrefix marks function tokens known only by address.
	AnonymousPrefix string `json:"anonymousPrefix" jsonschema:"title=Anonymous Prefix,description=Prefix of symbols that need resolution"`

	// CompoundPrefix is stripped from anonymous tokens to obtain the
	// hexadecimal RVA fragment used in the search pattern.
	CompoundPrefix string `json:"compoundPrefix" jsonschema:"title=Compound Prefix,description=Anonymous prefix plus base digits stripped to get the RVA fragment"`

	// RVAPattern formats the RVA fragment into the listing search pattern.
	RVAPattern string `json:"rvaPattern" jsonschema:"title=RVA Pattern,description=Format of the RVA comment searched in the listing"`

	// InitialWindow is the leading-context size of the first listing search.
	InitialWindow int `json:"initialWindow" jsonschema:"title=Initial Window,description=Leading context lines for the first search attempt"`

	// WindowCap bounds the window doubling. Once the window reaches the cap
	// without an enclosing class declaration the symbol stays unresolved.
	WindowCap int `json:"windowCap" jsonschema:"title=Window Cap,description=Upper bound on the leading context window"`
}

// Default reproduces the constants of the original occurrence processor.
func Default() Config {
	return Config{
		SectionMarker:   ".text.1",
		Mnemonics:       []string{"CMP ", "MOV "},
		Blacklist:       defaultBlacklist(),
		BaseMarker:      "71",
		AnonymousPrefix: "sub_",
		CompoundPrefix:  "sub_710",
		RVAPattern:      "// RVA: 0x%s",
		InitialWindow:   5,
		WindowCap:       640,
	}
}

// LoadConfig reads a JSON config file over the defaults, so a file only
// needs to state the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseMarker == "" {
		return fmt.Errorf("baseMarker must not be empty")
	}
	if c.InitialWindow < 1 {
		return fmt.Errorf("initialWindow must be at least 1")
	}
	if c.WindowCap < c.InitialWindow {
		return fmt.Errorf("windowCap must not be below initialWindow")
	}
	return nil
}

// Blacklisted reports whether a resolved label contains any blacklisted
// substring. Note the default list contains the anonymous prefix itself, so
// unresolved fallback labels are dropped too.
func (c Config) Blacklisted(label string) bool {
	for _, entry := range c.Blacklist {
		if entry != "" && strings.Contains(label, entry) {
			return true
		}
	}
	return false
}

// defaultBlacklist lists class and system names known to be engine internals,
// third-party libraries, or unresolved-symbol markers.
func defaultBlacklist() []string {
	return []string{
		"BubbleGroup",
		"ChannelData",
		"ChannelServices",
		"EncodingTable",
		"ExecutionContext",
		"FileIOManager",
		"FilePanel",
		"InputManager",
		"NotificationDialogDetail",
		"PiaTestMenu",
		"PrivateGame",
		"PrivateHost",
		"PrivateMode",
		"PrivateRoom",
		"RandomMusicPanel",
		"RankedGameSettings",
		"RegexCharClass",
		"RemotingConfiguration",
		"RenderTexture",
		"RuntimeResource",
		"SaveData",
		"SceneArea",
		"SceneDebugTitle",
		"SceneResult",
		"ScoreEditorManager",
		"SemaphoreSlim",
		"SideStory",
		"SkeletonJson",
		"SkeletonRagdoll",
		"SoapServices",
		"StageData",
		"TMP_TextUtilities",
		"TerrainUtility",
		"TouchScreenState",
		"TypeDescriptor",
		"UguiNovelTextGenerator",
		"UserStatusManager",
		"iTween",
		"sub_",
	}
}
