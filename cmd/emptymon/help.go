package main

import (
	"fmt"
	"io"
)

const helpEN = `emptymon - Find empty Awake/Start/Update/LateUpdate methods

Usage:
  emptymon [flags]

Scan:
  -m, --methods LIST        methods to look for (Awake,Start,Update,LateUpdate or "all")
                            default: Start,Update
  -r, --root DIR            directory to scan (default: .)
      --source-root DIR     base for reported paths (default: --root)
      --ext LIST            file extensions to scan (default: .cs)
  -x, --exclude GLOB        skip files/directories matching GLOB (repeatable, ** supported)
  -j, --jobs N              parallel workers, 1..64 (default: 1)
      --max-file-bytes N    skip files larger than N bytes (0 = unlimited)
      --skip-unreadable     record unreadable files and keep going

Output:
  -o, --output FORMAT       table|tsv|json|ndjson|csv|markdown (default: table)
      --fields LIST         columns: file,line,method,location
      --color MODE          auto|always|never (default: auto)
      --fail-on-findings    exit with status 3 when anything is found
      --progress            force progress on stderr
      --no-progress         disable progress
      --log-level LEVEL     debug|info|warn|error (default: info)

Config:
      --config PATH         config file (.yaml/.yml/.toml/.json)
                            otherwise .emptymon.* is searched upward from --root,
                            then $XDG_CONFIG_HOME/emptymon/config.*, then ~/.emptymon.*
  Environment variables EMPTYMON_* override the config file; flags override both.

Help:
  -h, --help [ja|en]        show this help
      --help-ja             show help in Japanese
`

const helpJA = `emptymon - 中身が空の Awake/Start/Update/LateUpdate メソッドを探します

使い方:
  emptymon [フラグ]

走査:
  -m, --methods LIST        検出するメソッド (Awake,Start,Update,LateUpdate または "all")
                            既定: Start,Update
  -r, --root DIR            走査するディレクトリ (既定: .)
      --source-root DIR     出力パスの基準 (既定: --root)
      --ext LIST            対象拡張子 (既定: .cs)
  -x, --exclude GLOB        GLOB に一致するファイル/ディレクトリを除外 (複数可、** 対応)
  -j, --jobs N              並列ワーカー数 1..64 (既定: 1)
      --max-file-bytes N    N バイトを超えるファイルを読み飛ばす (0 = 無制限)
      --skip-unreadable     読めないファイルを記録して走査を続ける

出力:
  -o, --output FORMAT       table|tsv|json|ndjson|csv|markdown (既定: table)
      --fields LIST         列: file,line,method,location
      --color MODE          auto|always|never (既定: auto)
      --fail-on-findings    検出があれば終了コード 3 で終了
      --progress            進捗表示を強制 (stderr)
      --no-progress         進捗表示を無効化
      --log-level LEVEL     debug|info|warn|error (既定: info)

設定:
      --config PATH         設定ファイル (.yaml/.yml/.toml/.json)
                            未指定時は --root から上位へ .emptymon.* を探し、
                            次に $XDG_CONFIG_HOME/emptymon/config.*、最後に ~/.emptymon.*
  環境変数 EMPTYMON_* は設定ファイルより、フラグは両方より優先されます。

ヘルプ:
  -h, --help [ja|en]        このヘルプを表示
      --help-ja             日本語ヘルプを表示
`

func printHelp(w io.Writer, lang string) {
	if lang == "ja" {
		fmt.Fprint(w, helpJA)
		return
	}
	fmt.Fprint(w, helpEN)
}
