package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"rfp-console/pkg/workflow"
)

// Decoder builds a typed intent from a JSON payload.
type Decoder func(payload []byte) (workflow.Intent, error)

var registry = map[workflow.Kind]Decoder{}

func register[T workflow.Intent]() {
	var zero T
	registry[zero.Kind()] = func(payload []byte) (workflow.Intent, error) {
		var in T
		if len(bytes.TrimSpace(payload)) > 0 {
			if err := json.Unmarshal(payload, &in); err != nil {
				return nil, fmt.Errorf("decode %s: %w", zero.Kind(), err)
			}
		}
		return in, nil
	}
}

func init() {
	register[Login]()
	register[Logout]()
	register[RestoreSession]()
	register[ForgotPassword]()
	register[ResetPassword]()

	register[FetchDocuments]()
	register[FetchDocument]()
	register[SelectDocument]()
	register[UploadDocument]()
	register[DeleteDocument]()
	register[RunAnalysis]()
	register[LoadAnalysis]()
	register[GenerateDocument]()
	register[ViewDocument]()
	register[CloseViewer]()

	register[FetchQuestions]()
	register[FetchAssignedQuestions]()
	register[FetchFilterData]()
	register[FetchSubmittedQuestions]()
	register[CheckSubmit]()
	register[FetchFilterQuestions]()
	register[AddQuestion]()
	register[DeleteQuestion]()
	register[ReassignQuestion]()
	register[EditAnswer]()
	register[SubmitAnswer]()
	register[GenerateAnswer]()

	register[FetchMyAssignments]()
	register[FetchAssignmentDetail]()
	register[SubmitAssignment]()

	register[FetchUsers]()
	register[FetchProfile]()
	register[UpdateProfile]()
	register[ChangePassword]()

	register[FetchLibrary]()
	register[UploadLibraryAsset]()
	register[DeleteLibraryAsset]()
	register[MoveLibraryAsset]()

	register[FetchTrash]()
	register[RestoreDocument]()
	register[PurgeDocument]()
	register[EmptyTrash]()

	register[FetchAssignedReviewers]()
	register[SetDraft]()
	register[AssignReviewer]()
	register[UnassignReviewer]()

	register[FetchTeam]()
	register[AddMember]()
	register[UpdateMember]()
	register[DeleteMember]()
	register[ResendVerification]()

	register[FetchKeystoneFiles]()
	register[UploadKeystoneFile]()
	register[DeleteKeystoneFile]()
	register[ViewKeystoneFile]()
	register[CloseKeystoneView]()

	register[LoadTheme]()
	register[SetTheme]()
}

// Registry maps every intent kind to its decoder.
func Registry() map[workflow.Kind]Decoder {
	out := make(map[workflow.Kind]Decoder, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

// Decode builds the intent named by kind.
func Decode(kind workflow.Kind, payload []byte) (workflow.Intent, error) {
	dec, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown intent kind %q", kind)
	}
	return dec(payload)
}

func Kinds() []workflow.Kind {
	kinds := make([]workflow.Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
