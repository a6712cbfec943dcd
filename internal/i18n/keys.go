package i18n

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyListen          = "listen"
	KeyRead            = "read"
	KeyPlay            = "play"
	KeyPause           = "pause"
	KeyNextChapter     = "next_chapter"
	KeyPreviousChapter = "previous_chapter"
	KeySkipForward     = "skip_forward"
	KeySkipBackward    = "skip_backward"
	KeyMute            = "mute"
	KeyUnmute          = "unmute"
	KeyVolume          = "volume"
	KeySpeed           = "speed"
	KeyChapters        = "chapters"
	KeyChapterPosition = "chapter_position"
	KeyNoChapter       = "no_chapter"
	KeyLoading         = "loading"

	KeyBufferingTitle   = "buffering_title"
	KeyBufferingMessage = "buffering_message"
	KeyPlaybackError    = "playback_error"
	KeyErrorGeneric     = "error_generic"
	KeyErrorAborted     = "error_aborted"
	KeyErrorNetwork     = "error_network"
	KeyErrorDecode      = "error_decode"
	KeyErrorUnsupported = "error_unsupported"
	KeyUnsupportedTitle = "unsupported_title"

	KeyPage           = "page"
	KeyOfPages        = "of_pages"
	KeyPrevPage       = "previous_page"
	KeyNextPage       = "next_page"
	KeySinglePage     = "single_page"
	KeyContinuous     = "continuous"
	KeyZoomIn         = "zoom_in"
	KeyZoomOut        = "zoom_out"
	KeyResetZoom      = "reset_zoom"
	KeyFullscreen     = "fullscreen"
	KeyExitFullscreen = "exit_fullscreen"
	KeyFirstPage      = "first_page"
	KeyLastPage       = "last_page"
	KeyLoadingDoc     = "loading_document"
	KeyDocumentError  = "document_error"
	KeyDownload       = "download"
	KeyDownloadSaved  = "download_saved"
	KeyDownloadFailed = "download_failed"

	KeySettings      = "settings"
	KeyLanguage      = "language"
	KeySave          = "save"
	KeyCancel        = "cancel"
	KeySettingsSaved = "settings_saved"

	KeyShortcuts      = "keyboard_shortcuts"
	KeyPlayPause      = "play_pause"
	KeyVolumeUp       = "volume_up"
	KeyVolumeDown     = "volume_down"
	KeySingleModeOnly = "single_mode_only"
	KeyOr             = "or"
	KeyClose          = "close"
)
