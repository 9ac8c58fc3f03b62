// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compile

// paramKeyMap maps internal parameter keys to target dictionary keys, per
// action type. Keys absent from a type's map pass through unchanged, which
// keeps opaque parameters intact across a round trip.
var paramKeyMap = map[string]map[string]string{
	"notification": {
		"body":  "WFNotificationActionBody",
		"title": "WFNotificationActionTitle",
		"sound": "WFNotificationActionSound",
	},
	"text": {
		"text": "WFTextActionText",
	},
	"ask": {
		"prompt":  "WFAskActionPrompt",
		"default": "WFAskActionDefaultAnswer",
	},
	"url": {
		"url": "WFURLActionURL",
	},
	"get_url_contents": {
		"url":    "WFURL",
		"method": "WFHTTPMethod",
	},
	"open_url": {
		"url": "WFInput",
	},
	"open_app": {
		"app": "WFAppIdentifier",
	},
	"wait": {
		"seconds": "WFDelayTime",
	},
	"show_result": {
		"text": "Text",
	},
	"set_variable": {
		"name":  "WFVariableName",
		"value": "WFInput",
	},
	"get_variable": {
		"name": "WFVariable",
	},
	"comment": {
		"text": "WFCommentActionText",
	},
	"number": {
		"value": "WFNumberActionNumber",
	},
	"copy_to_clipboard": {
		"value": "WFInput",
	},
	"get_weather": {
		"location": "WFWeatherCustomLocation",
	},
	"send_message": {
		"body":      "WFSendMessageContent",
		"recipient": "WFSendMessageActionRecipients",
	},
	"play_sound": {
		"sound": "WFInput",
	},
	"save_file": {
		"path":      "WFFileDestinationPath",
		"overwrite": "WFSaveFileOverwrite",
	},
	"speak": {
		"text": "WFText",
	},
	"repeat": {
		"count": "WFRepeatCount",
	},
	"repeat_each": {
		"items": "WFInput",
	},
	"if": {
		"condition": "WFCondition",
	},
}

// reverseKeyMap inverts paramKeyMap per type, built once at init.
var reverseKeyMap = func() map[string]map[string]string {
	out := make(map[string]map[string]string, len(paramKeyMap))
	for typ, fwd := range paramKeyMap {
		rev := make(map[string]string, len(fwd))
		for internal, wf := range fwd {
			rev[wf] = internal
		}
		out[typ] = rev
	}
	return out
}()

// targetKey maps an internal parameter key for the given action type.
func targetKey(actionType, key string) string {
	if m, ok := paramKeyMap[actionType]; ok {
		if wf, ok := m[key]; ok {
			return wf
		}
	}
	return key
}

// internalKey reverses targetKey.
func internalKey(actionType, key string) string {
	if m, ok := reverseKeyMap[actionType]; ok {
		if internal, ok := m[key]; ok {
			return internal
		}
	}
	return key
}
